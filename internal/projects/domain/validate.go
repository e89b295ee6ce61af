package domain

import "strings"

// MaxImageBytes is the largest image accepted for upload.
const MaxImageBytes = 10 * 1024 * 1024

// MaxDescriptionLen caps the description field.
const MaxDescriptionLen = 500

// ValidationErrors maps a field name to a human-readable problem. It is
// returned before any network call is made.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for field, msg := range v {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// Validate checks the caller-settable fields of a project. A nil return means
// the fields are acceptable.
func Validate(f Fields) ValidationErrors {
	errs := ValidationErrors{}

	if strings.TrimSpace(f.Title) == "" {
		errs["title"] = "Title is required"
	}
	if strings.TrimSpace(f.Description) == "" {
		errs["description"] = "Description is required"
	}
	if len(f.Description) > MaxDescriptionLen {
		errs["description"] = "Description too long (max 500 chars)"
	}
	if f.Link != "" && !strings.HasPrefix(f.Link, "http://") && !strings.HasPrefix(f.Link, "https://") {
		errs["link"] = "Link must start with http:// or https://"
	}
	if f.Category != "" && !ValidCategory(f.Category) {
		errs["category"] = "Unknown category"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateImage checks an upload candidate's declared content type and size.
func ValidateImage(contentType string, size int64) ValidationErrors {
	errs := ValidationErrors{}

	if !strings.HasPrefix(contentType, "image/") {
		errs["image"] = "Please upload an image file (JPEG, PNG, etc.)"
	} else if size > MaxImageBytes {
		errs["image"] = "Image must be less than 10MB"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
