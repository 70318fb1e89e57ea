package http

// ErrorBody is the wire shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// HealthBody is the wire shape of the health response.
type HealthBody struct {
	Status string `json:"status"`
}
