package http

// APIResponse is the standard response envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *AppError   `json:"error,omitempty"`
}

// ListDataResponse wraps list payloads with a count.
type ListDataResponse struct {
	Items interface{} `json:"items"`
	Count int         `json:"count"`
}

// ValidationFieldError describes a single failed validation rule.
type ValidationFieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}
