package users

import (
	"errors"
	"net/http"

	"github.com/silvermint/pawtrack/pkg/auth"
	JSON "github.com/silvermint/pawtrack/pkg/json-utilities"
	"github.com/silvermint/pawtrack/pkg/rest"
)

func RegisterHandlers(engine rest.Engine, ur UserRepository) {
	engine.Post("/users", signUp(ur))
	engine.Post("/sessions", signIn(ur))
}

func signUp(ur UserRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		// parse and validate the credentials
		data, err := JSON.DecodeValidate[SignUpData](request)
		if err != nil {
			JSON.ValidationError(writer, err)
			return
		}

		newUser, err := ur.Register(data)
		switch {
		case err == nil:
			JSON.Created(writer, newUser)
		case errors.Is(err, ErrEmailTaken):
			JSON.Conflict(writer, err.Error())
		case errors.Is(err, ErrInvalidEmail),
			errors.Is(err, auth.ErrPasswordLength),
			errors.Is(err, auth.ErrPasswordDigit),
			errors.Is(err, auth.ErrPasswordLetter):
			JSON.BadRequestWithMessage(writer, err.Error())
		default:
			JSON.InternalServerError(writer, err)
		}
	}
}

func signIn(ur UserRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		data, err := JSON.DecodeValidate[SignInData](request)
		if err != nil {
			JSON.ValidationError(writer, err)
			return
		}

		identity, err := ur.Login(data)
		switch {
		case err == nil:
			JSON.Ok(writer, identity)
		case errors.Is(err, ErrUnknownEmail), errors.Is(err, ErrWrongPassword):
			JSON.UnauthorisedWithMessage(writer, err.Error())
		default:
			JSON.InternalServerError(writer, err)
		}
	}
}
