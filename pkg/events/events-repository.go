package events

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/silvermint/pawtrack/pkg/ndate"
)

type EventRepository interface {
	AddEvent(data AddEventData, userId int64) (*Event, error)
	GetEventsByMonth(userId int64, year int, month time.Month) ([]Event, error)
	GetEventsByDate(userId int64, date ndate.Date) ([]Event, error)
	DeleteEvent(eventId, userId int64) bool
}

type eventRepository struct {
	Connection *sql.DB
}

func NewRepository(connection *sql.DB) EventRepository {
	return &eventRepository{connection}
}

func (er *eventRepository) AddEvent(data AddEventData, userId int64) (*Event, error) {

	result, err := er.Connection.Exec(
		"INSERT INTO events (user_id, event_date, title) VALUES (?, ?, ?)",
		userId, data.Date, data.Title,
	)
	if err != nil {
		return nil, fmt.Errorf("couldn't add the event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	// read the row back for its default timestamps
	var event = Event{Id: id, UserId: userId}
	if err = er.Connection.QueryRow(
		"SELECT event_date, title, created_at, updated_at FROM events WHERE id = ?",
		id,
	).Scan(&event.Date, &event.Title, &event.Created, &event.Updated); err != nil {
		return nil, err
	}

	return &event, nil
}

// GetEventsByMonth collects the user's events falling within the given month,
// ordered by date and insertion, the way the calendar grid expects them.
func (er *eventRepository) GetEventsByMonth(userId int64, year int, month time.Month) ([]Event, error) {
	return er.collectEvents(`
		SELECT id, event_date, title, created_at, updated_at FROM events
		WHERE user_id = ?
		AND strftime('%Y', event_date) = ? AND strftime('%m', event_date) = ?
		ORDER BY event_date, id`,
		userId, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month),
	)
}

func (er *eventRepository) GetEventsByDate(userId int64, date ndate.Date) ([]Event, error) {
	return er.collectEvents(`
		SELECT id, event_date, title, created_at, updated_at FROM events
		WHERE user_id = ? AND event_date = ?
		ORDER BY id`,
		userId, date,
	)
}

func (er *eventRepository) collectEvents(query string, userId int64, args ...interface{}) ([]Event, error) {

	var userEvents = make([]Event, 0)
	rows, err := er.Connection.Query(query, append([]interface{}{userId}, args...)...)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var event = Event{UserId: userId}
		if err = rows.Scan(&event.Id, &event.Date, &event.Title, &event.Created, &event.Updated); err != nil {
			return userEvents, err
		}
		userEvents = append(userEvents, event)
	}

	return userEvents, rows.Err()
}

// DeleteEvent removes a single event, returning a negative result when it doesn't
// exist or belongs to another owner.
func (er *eventRepository) DeleteEvent(eventId, userId int64) bool {
	result, err := er.Connection.Exec(
		"DELETE FROM events WHERE id = ? AND user_id = ?",
		eventId, userId,
	)
	if err != nil {
		return false
	}
	deleted, err := result.RowsAffected()
	return err == nil && deleted == 1
}
