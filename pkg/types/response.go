package types

// SuccessEnvelope is the wire shape for all 2xx responses.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public error body. Details is only populated for
// codes whose metadata allows it.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope is the wire shape for all non-2xx responses.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
