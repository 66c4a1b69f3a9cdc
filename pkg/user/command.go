package user

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/nyaruka/phonenumbers"
)

// usernamePattern: letters, digits and underscores, 3-20 characters.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

// CreateUserCommand carries the input for user creation. Password is
// plaintext here, consumed exactly once to produce a hash and never
// stored or logged.
type CreateUserCommand struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Role        string `json:"role,omitempty"`
}

// Validate will validate the command before any write happens.
func (c CreateUserCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Username,
			validation.Required,
			validation.Match(usernamePattern).
				Error("must be 3-20 characters long and can only contain letters, numbers, and underscores"),
		),
		validation.Field(&c.Email, validation.Required, is.Email),
		validation.Field(&c.Password, validation.Required),
		validation.Field(&c.PhoneNumber, validation.By(validatePhoneNumber)),
		validation.Field(&c.Role, validation.In(string(RoleUser), string(RoleAdmin))),
	)
}

// role returns the requested role, defaulting to USER when unspecified.
func (c CreateUserCommand) role() Role {
	if c.Role == "" {
		return RoleUser
	}
	return Role(c.Role)
}

func validatePhoneNumber(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	num, err := phonenumbers.Parse(s, "")
	if err != nil {
		return errors.New("must be a valid phone number in international format")
	}
	if !phonenumbers.IsValidNumber(num) {
		return errors.New("must be a valid phone number")
	}
	return nil
}
