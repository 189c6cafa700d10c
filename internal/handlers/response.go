package handlers

import "time"

// errorResponse is the payload returned for resource errors.
type errorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Details   string    `json:"details"`
}

func newErrorResponse(message, details string) errorResponse {
	return errorResponse{
		Timestamp: time.Now().UTC(),
		Message:   message,
		Details:   details,
	}
}
