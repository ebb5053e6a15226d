package contact

// Submission is a contact form message. It is never persisted.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Company notification outcomes.
const (
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
	NotificationSkipped = "skipped"
)

// Result reports which emails went out.
type Result struct {
	CompanyNotification string
	ConfirmationSent    bool
}
