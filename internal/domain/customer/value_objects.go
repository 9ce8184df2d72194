package customer

import (
	"regexp"
	"strings"

	"table-booking/internal/pkg/errs"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type Status string

const (
	StatusRegular Status = "regular"
	StatusVIP     Status = "vip"
)

// Contact is what the booking form collects about the guest.
type Contact struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
}

// NewContact trims the fields, normalizes the phone number against dialCode
// and checks the email when one is given.
func NewContact(firstName, lastName, phone, email, dialCode string) (Contact, error) {
	c := Contact{
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Email:     strings.TrimSpace(email),
	}
	if c.FirstName == "" {
		return Contact{}, errs.Invalid("first name is required")
	}

	p, err := NormalizePhone(dialCode, phone)
	if err != nil {
		return Contact{}, err
	}
	c.Phone = p

	if c.Email != "" && !emailRegex.MatchString(c.Email) {
		return Contact{}, errs.Invalid("email %q is not valid", c.Email)
	}
	return c, nil
}

func (c Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// NormalizePhone keeps the digits of raw, drops leading zeros of the national
// number and prefixes dialCode. A raw value that already starts with "+" is
// taken as international and keeps its own country code.
func NormalizePhone(dialCode, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	international := strings.HasPrefix(raw, "+")

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if !international {
		digits = strings.TrimLeft(digits, "0")
	}
	if len(digits) < 6 {
		return "", errs.Invalid("phone number %q is too short", raw)
	}
	if international {
		return "+" + digits, nil
	}

	code := strings.TrimSpace(dialCode)
	if !strings.HasPrefix(code, "+") {
		code = "+" + code
	}
	return code + digits, nil
}
