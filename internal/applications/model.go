package applications

import "time"

// Record is one persisted job application.
type Record struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	WorkExp     string    `json:"workExp"`
	ApplyingFor string    `json:"applyingFor"`
	Github      string    `json:"github"`
	Linkedin    string    `json:"linkedin"`
	Intro       string    `json:"intro"`
	ResumePath  string    `json:"resumePath"`
}

// Form is the submitted application before it becomes a Record.
type Form struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	WorkExp     string
	ApplyingFor string
	Github      string
	Linkedin    string
	Intro       string
}
