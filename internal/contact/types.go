package contact

import (
	"strings"
	"time"
)

// Message is one contact-form submission. A copy is kept in the document
// store before the relay is attempted.
type Message struct {
	ID        string    `json:"id" firestore:"-"`
	Name      string    `json:"name" firestore:"name"`
	Email     string    `json:"email" firestore:"email"`
	Subject   string    `json:"subject" firestore:"subject"`
	Body      string    `json:"message" firestore:"message"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}

// FieldErrors maps a form field to a problem, mirroring the form's inline
// error rendering.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	parts := make([]string, 0, len(f))
	for field, msg := range f {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// Validate checks a submission before any network call.
func (m Message) Validate() FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(m.Name) == "" {
		errs["name"] = "Name is required"
	}
	if !strings.Contains(m.Email, "@") {
		errs["email"] = "A valid email is required"
	}
	if strings.TrimSpace(m.Body) == "" {
		errs["message"] = "Message is required"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
