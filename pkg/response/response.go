package response

// Envelope is the error body returned by middleware rejections and the
// global error handler.
type Envelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Error(code, message string, details any) Envelope {
	return Envelope{Code: code, Message: message, Details: details}
}
