package pets

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/silvermint/pawtrack/pkg/ndate"
)

type Species string

const (
	Dog Species = "dog"
	Cat Species = "cat"
)

// tk really odd issue with variadic arguments; can't specify Species[]
var speciesValues = []interface{}{Dog, Cat}

type Pet struct {
	Id      int64
	UserId  int64
	Name    string
	Species Species
	Breed   string
	Birth   ndate.Date
	Notes   string
}

type AddPetData struct {
	Name    string
	Species Species
	Breed   string
	Birth   ndate.Date
	Notes   string
}

func (data AddPetData) Validate() error {
	return validation.ValidateStruct(&data,
		validation.Field(&data.Name, validation.Required, validation.Length(1, 50)),
		validation.Field(&data.Species, validation.Required, validation.In(speciesValues...)),
		validation.Field(&data.Birth, validation.By(validBirth)),
		validation.Field(&data.Breed, validation.Length(0, 100)),
		validation.Field(&data.Notes, validation.Length(0, 1000)),
	)
}

func validBirth(value interface{}) error {
	date, ok := value.(ndate.Date)
	if !ok || date.IsZero() {
		return errors.New("a birth date is required")
	}
	if date.After(ndate.Today()) {
		return errors.New("birth dates can't fall in the future")
	}
	return nil
}
