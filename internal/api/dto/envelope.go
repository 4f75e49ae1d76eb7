package dto

// Envelope is the body of every response.
type Envelope struct {
	Status  int        `json:"status"`
	Data    any        `json:"data"`
	Message string     `json:"message"`
	Error   *ErrorBody `json:"error"`
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}
