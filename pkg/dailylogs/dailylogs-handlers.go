package dailylogs

import (
	"errors"
	"net/http"

	"github.com/silvermint/pawtrack/pkg/auth"
	JSON "github.com/silvermint/pawtrack/pkg/json-utilities"
	"github.com/silvermint/pawtrack/pkg/rest"
	"github.com/silvermint/pawtrack/pkg/users"
)

// recentWeightsWindow spans the trailing days charted by the client.
const recentWeightsWindow = 7

func RegisterHandlers(engine rest.Engine, lr LogRepository, ur users.UserRepository) {
	engine.Put("/logs", upsertLog(lr), auth.Auth(ur))
	engine.Get("/pets/:id/logs", getLogs(lr), auth.Auth(ur))
	engine.Get("/pets/:id/weights", getRecentWeights(lr), auth.Auth(ur))
}

func upsertLog(lr LogRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		// parse and validate the day's measurements
		data, err := JSON.DecodeValidate[AddLogData](request)
		if err != nil {
			JSON.ValidationError(writer, err)
			return
		}

		log, report, err := lr.Upsert(data, auth.GetUserId(request))
		switch {
		case err == nil:
			JSON.Ok(writer, struct {
				Log    *DailyLog
				Report Report
			}{log, report})
		case errors.Is(err, ErrPetNotFound):
			JSON.NotFound(writer, err.Error())
		default:
			JSON.InternalServerError(writer, err)
		}
	}
}

func getLogs(lr LogRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		petId, err := rest.ParamId(request, "id")
		if err != nil {
			JSON.BadRequest(writer)
			return
		}

		logs, err := lr.GetLogs(petId, auth.GetUserId(request))
		if err != nil {
			JSON.InternalServerError(writer, err)
			return
		}
		JSON.Ok(writer, logs)
	}
}

func getRecentWeights(lr LogRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		petId, err := rest.ParamId(request, "id")
		if err != nil {
			JSON.BadRequest(writer)
			return
		}

		weights, err := lr.GetRecentWeights(petId, auth.GetUserId(request), recentWeightsWindow)
		if err != nil {
			JSON.InternalServerError(writer, err)
			return
		}
		JSON.Ok(writer, weights)
	}
}
