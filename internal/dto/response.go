package dto

// Dialog kinds understood by the form.
const (
	DialogInfo    = "info"
	DialogWarning = "warning"
	DialogError   = "error"
)

// APIResponse is the envelope every endpoint and middleware answers with.
// Failed requests carry a Dialog so the form can show the reason as is.
type APIResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message,omitempty"`
	Data    any     `json:"data,omitempty"`
	Dialog  *Dialog `json:"dialog,omitempty"`
}

// SuccessResponse wraps data in a success envelope.
func SuccessResponse(message string, data any) APIResponse {
	return APIResponse{Status: "success", Message: message, Data: data}
}

// ErrorResponse builds a failure envelope whose dialog has the given kind.
// An unknown kind falls back to DialogError.
func ErrorResponse(kind, message string) APIResponse {
	switch kind {
	case DialogInfo, DialogWarning, DialogError:
	default:
		kind = DialogError
	}
	return APIResponse{
		Status:  "error",
		Message: message,
		Dialog:  &Dialog{Kind: kind, Message: message},
	}
}
