package user

import (
	"errors"
	"strings"

	"github.com/examhall/backend/internal/id"
)

// User mirrors the identity record issued by the authentication provider.
type User struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	IsAdmin   bool
}

func New(email, firstName, lastName string) (*User, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.New("a valid email is required")
	}
	return &User{
		ID:        id.GenerateID(),
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
	}, nil
}

// DisplayName is "Last First email", trimmed when names are missing.
func (u *User) DisplayName() string {
	return strings.Join(strings.Fields(u.LastName+" "+u.FirstName+" "+u.Email), " ")
}
