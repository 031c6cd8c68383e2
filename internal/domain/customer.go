package domain

import (
	"net/mail"
	"regexp"
	"time"
)

// Phone is accepted either as international (+ followed by 7-15 digits)
// or as NNN-NNN-NNNN.
var phonePattern = regexp.MustCompile(`^(\+\d{7,15}|\d{3}-\d{3}-\d{4})$`)

type Customer struct {
	ID        int64
	Name      string
	Email     string
	Phone     *string
	CreatedAt time.Time
}

func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

func ValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	// mail.ParseAddress accepts "Name <a@b>" forms; require the bare address.
	return addr.Address == email
}
