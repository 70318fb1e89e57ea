package models

// UserPreferences is one user's stored preference blob.
type UserPreferences struct {
	UserID      string                 `json:"userId"`
	Preferences map[string]interface{} `json:"preferences"`
}

// SettingsRequest is the PUT /api/settings body.
type SettingsRequest struct {
	Preferences map[string]interface{} `json:"preferences" validate:"required"`
}
