package pets

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

type PetRepository interface {
	GetPets(userId int64) ([]Pet, error)
	AddPet(data AddPetData, userId int64) (*Pet, error)
	DeletePet(petId, userId int64) bool
	OwnsPet(petId, userId int64) bool
}

type petRepository struct {
	Connection *sql.DB
}

var ErrDuplicateName = errors.New("a pet with the same name is already registered")

func NewRepository(connection *sql.DB) PetRepository {
	return &petRepository{connection}
}

func (pr *petRepository) GetPets(userId int64) ([]Pet, error) {

	// initialise an empty slice to avoid null serialisation
	var userPets = make([]Pet, 0)

	rows, err := pr.Connection.Query(`
		SELECT id, name, species, breed, birth, notes FROM pets
		WHERE user_id = ?
		ORDER BY name`,
		userId,
	)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var pet = Pet{UserId: userId}
		var breed, notes sql.NullString
		if err = rows.Scan(&pet.Id, &pet.Name, &pet.Species, &breed, &pet.Birth, &notes); err != nil {
			return userPets, err
		}
		pet.Breed, pet.Notes = breed.String, notes.String
		userPets = append(userPets, pet)
	}

	return userPets, rows.Err()
}

func (pr *petRepository) AddPet(data AddPetData, userId int64) (*Pet, error) {

	result, err := pr.Connection.Exec(`
		INSERT INTO pets (user_id, name, species, breed, birth, notes)
		VALUES (?, ?, ?, ?, ?, ?)`,
		userId,
		data.Name,
		data.Species,
		nullable(data.Breed),
		data.Birth,
		nullable(data.Notes),
	)

	// detects name uniqueness violations among the owner's pets
	if sqliteErr, ok := err.(sqlite3.Error); ok {
		if sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, ErrDuplicateName
		}
	}
	if err != nil {
		return nil, fmt.Errorf("couldn't add pet %q: %w", data.Name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &Pet{
		Id:      id,
		UserId:  userId,
		Name:    data.Name,
		Species: data.Species,
		Breed:   data.Breed,
		Birth:   data.Birth,
		Notes:   data.Notes,
	}, nil
}

// DeletePet removes the pet and, through cascading foreign keys, its daily logs.
// It returns a negative result when the pet doesn't exist or belongs to another owner.
func (pr *petRepository) DeletePet(petId, userId int64) bool {
	result, err := pr.Connection.Exec(
		"DELETE FROM pets WHERE id = ? AND user_id = ?",
		petId, userId,
	)
	if err != nil {
		return false
	}
	deleted, err := result.RowsAffected()
	return err == nil && deleted == 1
}

// OwnsPet verifies whether a given pet exists and is owned by the specified user.
func (pr *petRepository) OwnsPet(petId, userId int64) (owns bool) {
	var err = pr.Connection.QueryRow(
		"SELECT TRUE FROM pets WHERE id = ? AND user_id = ?",
		petId, userId,
	).Scan(&owns)
	return err == nil && owns
}

func nullable(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
