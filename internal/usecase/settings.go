package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"PriceBoard/internal/domain/models"
	domrepo "PriceBoard/internal/domain/repository"
)

// ErrCorruptedPreferences marks a stored payload that no longer parses as
// JSON; it indicates prior data corruption, not caller error.
var ErrCorruptedPreferences = errors.New("corrupted preferences payload")

// SettingsUseCase provides per-user preference blob CRUD.
type SettingsUseCase struct {
	store domrepo.PreferenceStore
}

func NewSettingsUseCase(store domrepo.PreferenceStore) *SettingsUseCase {
	return &SettingsUseCase{store: store}
}

// Get returns the stored preferences, domrepo.ErrNotFound when absent, or
// ErrCorruptedPreferences when the stored payload is unparsable.
func (uc *SettingsUseCase) Get(ctx context.Context, userID string) (*models.UserPreferences, error) {
	payload, err := uc.store.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	var prefs map[string]interface{}
	if err := json.Unmarshal([]byte(payload), &prefs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptedPreferences, err)
	}
	return &models.UserPreferences{UserID: userID, Preferences: prefs}, nil
}

// Put upserts the preferences. requestTime, when given, overrides the
// update timestamp (the X-Request-Time header); else current UTC is used.
func (uc *SettingsUseCase) Put(ctx context.Context, userID string, prefs map[string]interface{}, requestTime string) error {
	payload, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	updatedAt := strings.TrimSpace(requestTime)
	if updatedAt == "" {
		updatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	if err := uc.store.Upsert(ctx, userID, string(payload), updatedAt); err != nil {
		return fmt.Errorf("put settings: %w", err)
	}
	return nil
}

// Delete removes any stored preferences; deleting a missing record succeeds.
func (uc *SettingsUseCase) Delete(ctx context.Context, userID string) error {
	if err := uc.store.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete settings: %w", err)
	}
	return nil
}
