package dto

// StartRunRequest is the payload submitted by the form's start button.
type StartRunRequest struct {
	Audience string `json:"audience"`
}

// Dialog is a modal message the form should show to the user.
type Dialog struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// RunStatus is the snapshot of the current run polled by the form.
type RunStatus struct {
	RunID     string  `json:"run_id,omitempty"`
	Audience  string  `json:"audience,omitempty"`
	State     string  `json:"state"`
	Progress  float64 `json:"progress"`
	Active    bool    `json:"active"`
	LeadCount int     `json:"lead_count"`
	SheetURL  string  `json:"sheet_url,omitempty"`
	Dialog    *Dialog `json:"dialog,omitempty"`
}
