package events

import (
	"errors"
	"net/url"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/silvermint/pawtrack/pkg/ndate"
)

// Event marks a dated entry on the owner's calendar; several events may share a date.
type Event struct {
	Id      int64
	UserId  int64
	Date    ndate.Date
	Title   string
	Created time.Time
	Updated time.Time
}

type AddEventData struct {
	Date  ndate.Date
	Title string
}

func (data AddEventData) Validate() error {
	return validation.ValidateStruct(&data,
		validation.Field(&data.Date, validation.By(validEventDate)),
		validation.Field(&data.Title, validation.Required, validation.Length(1, 100)),
	)
}

func validEventDate(value interface{}) error {
	if date, ok := value.(ndate.Date); !ok || date.IsZero() {
		return errors.New("an event date is required")
	}
	return nil
}

// getMonthParams validates and parses the year and month a calendar view spans.
func getMonthParams(params url.Values) (year int, month time.Month, err error) {

	var rawYear = params.Get("year")
	if err = validation.Validate(rawYear, validation.Required, is.Digit, validation.Length(4, 4)); err != nil {
		return year, month, err
	}

	var rawMonth = params.Get("month")
	if err = validation.Validate(rawMonth, validation.Required, is.Digit); err != nil {
		return year, month, err
	}

	year, _ = strconv.Atoi(rawYear)
	numericMonth, _ := strconv.Atoi(rawMonth)
	if numericMonth < 1 || numericMonth > 12 {
		return year, month, errors.New("months range from 1 to 12")
	}

	return year, time.Month(numericMonth), nil
}
