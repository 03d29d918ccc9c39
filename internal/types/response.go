package types

// Response is the envelope every API response is wrapped in, success or not.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}
