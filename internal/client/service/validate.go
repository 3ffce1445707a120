package service

import (
	"fmt"
	"strings"

	"github.com/crissancio/saas-tenant-pos/internal/client/domain"
)

// FieldError reports one invalid or missing field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ValidationErrors aggregates field errors so the caller can surface
// them per field rather than as one opaque message.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validate checks the fields required to register a client: name,
// document and phone. Email is optional but must look like an address
// when present.
func Validate(c *domain.Client) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Reason: "required"})
	}
	if strings.TrimSpace(c.Document) == "" {
		errs = append(errs, FieldError{Field: "document", Reason: "required"})
	}
	if strings.TrimSpace(c.Phone) == "" {
		errs = append(errs, FieldError{Field: "phone", Reason: "required"})
	}
	if email := strings.TrimSpace(c.Email); email != "" && !strings.Contains(email, "@") {
		errs = append(errs, FieldError{Field: "email", Reason: "invalid"})
	}

	return errs
}
