package types

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// SuccessFlag is the body returned by deletes and logout.
type SuccessFlag struct {
	Success bool `json:"success"`
}
