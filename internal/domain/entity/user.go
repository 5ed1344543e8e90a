package entity

import (
	"fmt"
	"strings"

	"booksaetong/internal/utils/text"
)

// User is a marketplace member. Address doubles as the member's trading area and is
// what the "near me" feed is scoped to.
type User struct {
	ID         string
	Email      string
	Nickname   string
	Address    string
	ProfileURL string
}

// LocationScope returns the area the user's feed is restricted to, or "" when the
// user has not set an address.
func (u *User) LocationScope() string {
	if u == nil {
		return ""
	}
	return strings.TrimSpace(u.Address)
}

// Validate checks the user's contact and profile fields.
func (u *User) Validate() error {
	if u.Nickname == "" {
		return &ValidationError{Field: "nickname", Message: "nickname is required"}
	}
	if !strings.Contains(u.Email, "@") {
		return &ValidationError{Field: "email", Message: "email is malformed"}
	}
	// 住所はそのまま feed の location scope になる
	if text.CountRunes(u.Address) > MaxLocationLength {
		return &ValidationError{
			Field:   "address",
			Message: fmt.Sprintf("address must not exceed %d characters", MaxLocationLength),
		}
	}
	if u.ProfileURL != "" {
		if err := ValidateProfileURL(u.ProfileURL); err != nil {
			return err
		}
	}
	return nil
}
