package entity

// SourceFacebook labels leads collected from public Facebook posts.
const SourceFacebook = "Facebook"

// Placeholder values written when a field could not be resolved.
const (
	UnknownUsername = "unknown"
	UnknownName     = "Unknown User"
	EmailNotFound   = "N/A"
)

// Lead is a candidate contact accumulated across the pipeline stages.
type Lead struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Post     string `json:"post"`
	Source   string `json:"source"`
	Score    int    `json:"score"`
	Email    string `json:"email"`
	WhyFit   string `json:"why_fit"`
	Phone    string `json:"phone,omitempty"`
}
