package dailylogs

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/silvermint/pawtrack/pkg/ndate"
	"github.com/silvermint/pawtrack/pkg/pets"
)

type LogRepository interface {
	Upsert(data AddLogData, userId int64) (*DailyLog, Report, error)
	GetLogs(petId, userId int64) ([]DailyLog, error)
	GetRecentWeights(petId, userId int64, days int) ([]WeightEntry, error)
}

type logRepository struct {
	Connection *sql.DB
}

var ErrPetNotFound = errors.New("no such pet belongs to the requester")

func NewRepository(connection *sql.DB) LogRepository {
	return &logRepository{connection}
}

// Upsert saves the day's measurements, overwriting a previously submitted log for the
// same pet and date while refreshing its update timestamp. The species lookup doubles
// as the ownership check.
func (lr *logRepository) Upsert(data AddLogData, userId int64) (*DailyLog, Report, error) {

	var species pets.Species
	var err = lr.Connection.QueryRow(
		"SELECT species FROM pets WHERE id = ? AND user_id = ?",
		data.PetId, userId,
	).Scan(&species)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, Report{}, ErrPetNotFound
	}
	if err != nil {
		return nil, Report{}, err
	}

	if _, err = lr.Connection.Exec(`
		INSERT INTO daily_logs (user_id, pet_id, log_date, weight, food_g, water_ml, activity_min, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (pet_id, log_date) DO UPDATE SET
			weight = excluded.weight,
			food_g = excluded.food_g,
			water_ml = excluded.water_ml,
			activity_min = excluded.activity_min,
			notes = excluded.notes,
			updated_at = CURRENT_TIMESTAMP`,
		userId,
		data.PetId,
		data.Date,
		data.Weight,
		data.Food,
		data.Water,
		data.Activity,
		nullableNotes(data.Notes),
	); err != nil {
		return nil, Report{}, fmt.Errorf("couldn't save the daily log: %w", err)
	}

	saved, err := lr.getLog(data.PetId, data.Date)
	if err != nil {
		return nil, Report{}, err
	}

	return saved, assess(species, data), nil
}

func (lr *logRepository) getLog(petId int64, date ndate.Date) (*DailyLog, error) {
	var log = DailyLog{PetId: petId}
	var notes sql.NullString
	if err := lr.Connection.QueryRow(`
		SELECT id, user_id, log_date, weight, food_g, water_ml, activity_min, notes, created_at, updated_at
		FROM daily_logs
		WHERE pet_id = ? AND log_date = ?`,
		petId, date,
	).Scan(
		&log.Id,
		&log.UserId,
		&log.Date,
		&log.Weight,
		&log.Food,
		&log.Water,
		&log.Activity,
		&notes,
		&log.Created,
		&log.Updated,
	); err != nil {
		return nil, err
	}
	log.Notes = notes.String
	return &log, nil
}

func (lr *logRepository) GetLogs(petId, userId int64) ([]DailyLog, error) {

	var logs = make([]DailyLog, 0)
	rows, err := lr.Connection.Query(`
		SELECT id, log_date, weight, food_g, water_ml, activity_min, notes, created_at, updated_at
		FROM daily_logs
		WHERE user_id = ? AND pet_id = ?
		ORDER BY log_date DESC`,
		userId, petId,
	)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var log = DailyLog{UserId: userId, PetId: petId}
		var notes sql.NullString
		if err = rows.Scan(
			&log.Id,
			&log.Date,
			&log.Weight,
			&log.Food,
			&log.Water,
			&log.Activity,
			&notes,
			&log.Created,
			&log.Updated,
		); err != nil {
			return logs, err
		}
		log.Notes = notes.String
		logs = append(logs, log)
	}

	return logs, rows.Err()
}

// GetRecentWeights returns the pet's weight series over the trailing window of days,
// in chronological order, skipping days lacking a measurement.
func (lr *logRepository) GetRecentWeights(petId, userId int64, days int) ([]WeightEntry, error) {

	var entries = make([]WeightEntry, 0)
	rows, err := lr.Connection.Query(`
		SELECT log_date, weight FROM daily_logs
		WHERE user_id = ? AND pet_id = ? AND weight IS NOT NULL
		AND log_date >= date('now', ?)
		ORDER BY log_date`,
		userId, petId, fmt.Sprintf("-%d day", days),
	)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var entry WeightEntry
		if err = rows.Scan(&entry.Date, &entry.Weight); err != nil {
			return entries, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func nullableNotes(notes string) sql.NullString {
	return sql.NullString{String: notes, Valid: notes != ""}
}
