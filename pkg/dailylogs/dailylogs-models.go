package dailylogs

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/silvermint/pawtrack/pkg/ndate"
)

// DailyLog records a pet's measurements for one calendar day; at most one row exists
// per pet and date. Metrics are optional, as owners rarely track all four.
type DailyLog struct {
	Id       int64
	UserId   int64
	PetId    int64
	Date     ndate.Date
	Weight   *float64 // kilograms
	Food     *float64 // grams
	Water    *float64 // millilitres
	Activity *float64 // minutes
	Notes    string
	Created  time.Time
	Updated  time.Time
}

type AddLogData struct {
	PetId    int64
	Date     ndate.Date
	Weight   *float64
	Food     *float64
	Water    *float64
	Activity *float64
	Notes    string
}

func (data AddLogData) Validate() error {
	return validation.ValidateStruct(&data,
		validation.Field(&data.PetId, validation.Required, validation.Min(int64(1))),
		validation.Field(&data.Date, validation.By(validLogDate)),
		validation.Field(&data.Weight, validation.Min(0.0)),
		validation.Field(&data.Food, validation.Min(0.0)),
		validation.Field(&data.Water, validation.Min(0.0)),
		validation.Field(&data.Activity, validation.Min(0.0)),
		validation.Field(&data.Notes, validation.Length(0, 1000)),
	)
}

func validLogDate(value interface{}) error {
	if date, ok := value.(ndate.Date); !ok || date.IsZero() {
		return errors.New("a log date is required")
	}
	return nil
}

// WeightEntry is a single point of the recent weight series the client charts.
type WeightEntry struct {
	Date   ndate.Date
	Weight float64
}
