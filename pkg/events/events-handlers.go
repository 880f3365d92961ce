package events

import (
	"net/http"

	"github.com/silvermint/pawtrack/pkg/auth"
	JSON "github.com/silvermint/pawtrack/pkg/json-utilities"
	"github.com/silvermint/pawtrack/pkg/ndate"
	"github.com/silvermint/pawtrack/pkg/rest"
	"github.com/silvermint/pawtrack/pkg/users"
)

func RegisterHandlers(engine rest.Engine, er EventRepository, ur users.UserRepository) {
	engine.Get("/events", getEvents(er), auth.Auth(ur))
	engine.Post("/events", addEvent(er), auth.Auth(ur))
	engine.Delete("/events/:id", deleteEvent(er), auth.Auth(ur))
}

// getEvents serves either a single day's events, given a `date` parameter, or a whole
// month's, given `year` and `month` ones; the latter feeds the calendar grid.
func getEvents(er EventRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		var params = request.URL.Query()
		var userId = auth.GetUserId(request)

		if rawDate := params.Get("date"); rawDate != "" {
			date, err := ndate.Parse(rawDate)
			if err != nil {
				JSON.BadRequestWithMessage(writer, "dates must follow the yyyy-mm-dd format")
				return
			}
			respondWithEvents(writer)(er.GetEventsByDate(userId, date))
			return
		}

		year, month, err := getMonthParams(params)
		if err != nil {
			JSON.ValidationError(writer, err)
			return
		}
		respondWithEvents(writer)(er.GetEventsByMonth(userId, year, month))
	}
}

func respondWithEvents(writer http.ResponseWriter) func([]Event, error) {
	return func(userEvents []Event, err error) {
		if err != nil {
			JSON.InternalServerError(writer, err)
			return
		}
		JSON.Ok(writer, userEvents)
	}
}

func addEvent(er EventRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		data, err := JSON.DecodeValidate[AddEventData](request)
		if err != nil {
			JSON.ValidationError(writer, err)
			return
		}

		newEvent, err := er.AddEvent(data, auth.GetUserId(request))
		if err != nil {
			JSON.InternalServerError(writer, err)
			return
		}
		JSON.Created(writer, newEvent)
	}
}

func deleteEvent(er EventRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		eventId, err := rest.ParamId(request, "id")
		if err != nil {
			JSON.BadRequest(writer)
			return
		}

		// issues a bad request regardless of authorisation issues to deny information about existing resources
		if deleted := er.DeleteEvent(eventId, auth.GetUserId(request)); deleted {
			JSON.NoContent(writer)
		} else {
			JSON.BadRequest(writer)
		}
	}
}
