package controller

import "github.com/ajitpratap0/pokedex/internal/models"

// Severity grades a user-facing notice.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Notice is a message shown to the user after an operation.
type Notice struct {
	Severity Severity
	Title    string
	Message  string
}

// View is the presentation surface driven by a Controller.
type View interface {
	// ShowRecords replaces the displayed collection wholesale.
	ShowRecords(records []models.Pokemon)

	// SetSelected marks the displayed row at index as selected, or none when index < 0.
	SetSelected(index int)

	// Form returns the current text of the entry fields.
	Form() models.Form

	// SetForm overwrites the entry fields.
	SetForm(f models.Form)

	// Notify reports the outcome of an operation.
	Notify(n Notice)

	// Confirm asks a yes/no question. onResult may run after Confirm returns.
	Confirm(title, message string, onResult func(confirmed bool))
}
