// Package inquiry records contact form submissions and notifies the shop.
package inquiry

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("inquiry: invalid submission")

// ServiceTypes are the options offered by the contact form. Anything else is
// filed as "Other".
var ServiceTypes = []string{
	"Network Inspection",
	"Multimedia Repair & Installation",
	"All Desktops & Laptops",
	"Other",
}

// Field length limits for the public form.
const (
	maxNameLen    = 200
	maxEmailLen   = 254
	maxPhoneLen   = 40
	maxDetailsLen = 5000
)

// Inquiry is one contact form submission.
type Inquiry struct {
	ID          string
	Name        string
	Email       string
	Phone       string
	ServiceType string
	Details     string
	CreatedAt   time.Time
}

// Validate trims the submission, checks the required fields and limits, and
// normalizes ServiceType.
func Validate(in Inquiry) (Inquiry, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Details = strings.TrimSpace(in.Details)

	switch {
	case in.Name == "":
		return in, fmt.Errorf("%w: name is required", ErrInvalid)
	case in.Email == "":
		return in, fmt.Errorf("%w: email is required", ErrInvalid)
	case in.Phone == "":
		return in, fmt.Errorf("%w: phone is required", ErrInvalid)
	}
	if utf8.RuneCountInString(in.Name) > maxNameLen {
		return in, fmt.Errorf("%w: name exceeds %d characters", ErrInvalid, maxNameLen)
	}
	if len(in.Email) > maxEmailLen {
		return in, fmt.Errorf("%w: email exceeds %d characters", ErrInvalid, maxEmailLen)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return in, fmt.Errorf("%w: email %q is not an address", ErrInvalid, in.Email)
	}
	if len(in.Phone) > maxPhoneLen {
		return in, fmt.Errorf("%w: phone exceeds %d characters", ErrInvalid, maxPhoneLen)
	}
	if utf8.RuneCountInString(in.Details) > maxDetailsLen {
		return in, fmt.Errorf("%w: details exceed %d characters", ErrInvalid, maxDetailsLen)
	}
	in.ServiceType = normalizeServiceType(in.ServiceType)
	return in, nil
}

func normalizeServiceType(s string) string {
	s = strings.TrimSpace(s)
	for _, t := range ServiceTypes {
		if strings.EqualFold(s, t) {
			return t
		}
	}
	return "Other"
}
