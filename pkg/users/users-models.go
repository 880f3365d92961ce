package users

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type User struct {
	Id      int64
	Email   string
	Created time.Time
}

// SignUpData carries registration credentials; email format and password strength are
// vetted by the repository, which owns the ordering of those checks.
type SignUpData struct {
	Email           string
	Password        string
	PasswordConfirm string
}

func (data SignUpData) Validate() error {
	return validation.ValidateStruct(&data,
		validation.Field(&data.Email, validation.Required),
		validation.Field(&data.Password, validation.Required),
		validation.Field(&data.PasswordConfirm,
			validation.Required,
			validation.In(data.Password).Error("passwords don't match"),
		),
	)
}

type SignInData struct {
	Email    string
	Password string
}

func (data SignInData) Validate() error {
	return validation.ValidateStruct(&data,
		validation.Field(&data.Email, validation.Required),
		validation.Field(&data.Password, validation.Required),
	)
}
