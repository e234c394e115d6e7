package utils

// ErrorResponse is the envelope every non-2xx lifecycle response uses:
// validation failures (unknown secret type, bad decision status),
// ownership refusals on reveal, duplicate-active conflicts, and the
// opaque storage_error for internal failures.
type ErrorResponse struct {
	Code        int    `json:"code"`
	Message     string `json:"message"`
	Description string `json:"description,omitempty"`
}

// NewErrorResponse creates an error response; the optional description
// carries the sentinel error text or a field-level hint.
func NewErrorResponse(code int, message string, description ...string) ErrorResponse {
	resp := ErrorResponse{
		Code:    code,
		Message: message,
	}
	if len(description) > 0 {
		resp.Description = description[0]
	}
	return resp
}
