package middleware

// Context keys used to store request metadata.
const (
	ContextKeySubject   = "session_subject"
	ContextKeyRequestID = "request_id"
)
