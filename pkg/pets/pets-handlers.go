package pets

import (
	"errors"
	"net/http"

	"github.com/silvermint/pawtrack/pkg/auth"
	JSON "github.com/silvermint/pawtrack/pkg/json-utilities"
	"github.com/silvermint/pawtrack/pkg/rest"
	"github.com/silvermint/pawtrack/pkg/users"
)

func RegisterHandlers(engine rest.Engine, pr PetRepository, ur users.UserRepository) {
	engine.Get("/pets", getPets(pr), auth.Auth(ur))
	engine.Post("/pets", addPet(pr), auth.Auth(ur))
	engine.Delete("/pets/:id", deletePet(pr), auth.Auth(ur))
}

func getPets(pr PetRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		var userPets, err = pr.GetPets(auth.GetUserId(request))
		if err != nil {
			JSON.InternalServerError(writer, err)
			return
		}
		JSON.Ok(writer, userPets)
	}
}

func addPet(pr PetRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		// parse and validate the pet's profile
		data, err := JSON.DecodeValidate[AddPetData](request)
		if err != nil {
			JSON.ValidationError(writer, err)
			return
		}

		newPet, err := pr.AddPet(data, auth.GetUserId(request))
		switch {
		case err == nil:
			JSON.Created(writer, newPet)
		case errors.Is(err, ErrDuplicateName):
			JSON.Conflict(writer, err.Error())
		default:
			JSON.InternalServerError(writer, err)
		}
	}
}

func deletePet(pr PetRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		petId, err := rest.ParamId(request, "id")
		if err != nil {
			JSON.BadRequest(writer)
			return
		}

		// issues a bad request regardless of authorisation issues to deny information about existing resources
		if deleted := pr.DeletePet(petId, auth.GetUserId(request)); deleted {
			JSON.NoContent(writer)
		} else {
			JSON.BadRequest(writer)
		}
	}
}
