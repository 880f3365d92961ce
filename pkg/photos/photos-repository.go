package photos

import (
	"database/sql"
	"fmt"
)

type PhotoRepository interface {
	AddPhoto(userId int64, path, caption string) (*Photo, error)
	GetPhotos(userId int64) ([]Photo, error)
	DeletePhoto(photoId, userId int64) (path string, deleted bool)
}

type photoRepository struct {
	Connection *sql.DB
}

func NewRepository(connection *sql.DB) PhotoRepository {
	return &photoRepository{connection}
}

func (phr *photoRepository) AddPhoto(userId int64, path, caption string) (*Photo, error) {

	result, err := phr.Connection.Exec(
		"INSERT INTO photos (user_id, file_path, caption) VALUES (?, ?, ?)",
		userId, path, sql.NullString{String: caption, Valid: caption != ""},
	)
	if err != nil {
		return nil, fmt.Errorf("couldn't add the photo: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	// read the row back for its default timestamp
	var photo = Photo{Id: id, UserId: userId, Path: path, Caption: caption}
	if err = phr.Connection.QueryRow(
		"SELECT created_at FROM photos WHERE id = ?", id,
	).Scan(&photo.Created); err != nil {
		return nil, err
	}

	return &photo, nil
}

// GetPhotos lists the user's album, most recent uploads first.
func (phr *photoRepository) GetPhotos(userId int64) ([]Photo, error) {

	var album = make([]Photo, 0)
	rows, err := phr.Connection.Query(`
		SELECT id, file_path, caption, created_at FROM photos
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`,
		userId,
	)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var photo = Photo{UserId: userId}
		var caption sql.NullString
		if err = rows.Scan(&photo.Id, &photo.Path, &caption, &photo.Created); err != nil {
			return album, err
		}
		photo.Caption = caption.String
		album = append(album, photo)
	}

	return album, rows.Err()
}

// DeletePhoto removes the row and surrenders the stored path, so callers can dispose
// of the backing file; a negative result signals a missing or foreign photo.
func (phr *photoRepository) DeletePhoto(photoId, userId int64) (path string, deleted bool) {
	err := phr.Connection.QueryRow(
		"DELETE FROM photos WHERE id = ? AND user_id = ? RETURNING file_path",
		photoId, userId,
	).Scan(&path)
	// ErrNoRows covers both missing photos and foreign owners
	if err != nil {
		return "", false
	}
	return path, true
}
