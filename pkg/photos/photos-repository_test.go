package photos

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/silvermint/pawtrack/pkg/storage/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStorage(t *testing.T) *sql.DB {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	storage, err := sqlite.New(logger, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = storage.Close()
	})
	return storage.Connection
}

func seedUser(t *testing.T, connection *sql.DB, email string) int64 {
	t.Helper()
	result, err := connection.Exec(
		"INSERT INTO users (email, password_hash) VALUES (?, x'00')", email,
	)
	require.NoError(t, err)
	id, err := result.LastInsertId()
	require.NoError(t, err)
	return id
}

func TestAddPhoto(t *testing.T) {
	var connection = openTestStorage(t)
	var repository = NewRepository(connection)
	var userId = seedUser(t, connection, "owner@example.com")

	photo, err := repository.AddPhoto(userId, "assets/uploads/holly.jpg", "first walk")
	require.NoError(t, err)

	assert.Positive(t, photo.Id)
	assert.Equal(t, userId, photo.UserId)
	assert.Equal(t, "assets/uploads/holly.jpg", photo.Path)
	assert.Equal(t, "first walk", photo.Caption)
	assert.False(t, photo.Created.IsZero())
}

func TestAddPhoto_StoresEmptyCaptionsAsNull(t *testing.T) {
	var connection = openTestStorage(t)
	var repository = NewRepository(connection)
	var userId = seedUser(t, connection, "owner@example.com")

	photo, err := repository.AddPhoto(userId, "assets/uploads/holly.jpg", "")
	require.NoError(t, err)

	var caption sql.NullString
	require.NoError(t, connection.QueryRow(
		"SELECT caption FROM photos WHERE id = ?", photo.Id,
	).Scan(&caption))
	assert.False(t, caption.Valid)

	// and the listing reads it back as an empty string
	album, err := repository.GetPhotos(userId)
	require.NoError(t, err)
	require.Len(t, album, 1)
	assert.Empty(t, album[0].Caption)
}

func TestGetPhotos_ListsMostRecentFirst(t *testing.T) {
	var connection = openTestStorage(t)
	var repository = NewRepository(connection)
	var userId = seedUser(t, connection, "owner@example.com")
	var otherId = seedUser(t, connection, "other@example.com")

	// identical created_at timestamps fall back on descending ids
	for _, path := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		_, err := repository.AddPhoto(userId, path, "")
		require.NoError(t, err)
	}
	_, err := repository.AddPhoto(otherId, "foreign.jpg", "")
	require.NoError(t, err)

	album, err := repository.GetPhotos(userId)
	require.NoError(t, err)
	require.Len(t, album, 3)
	assert.Equal(t, "c.jpg", album[0].Path)
	assert.Equal(t, "b.jpg", album[1].Path)
	assert.Equal(t, "a.jpg", album[2].Path)
}

func TestGetPhotos_EmptyAlbum(t *testing.T) {
	var connection = openTestStorage(t)
	var repository = NewRepository(connection)
	var userId = seedUser(t, connection, "owner@example.com")

	album, err := repository.GetPhotos(userId)
	require.NoError(t, err)
	assert.Empty(t, album)
}

func TestDeletePhoto(t *testing.T) {
	var connection = openTestStorage(t)
	var repository = NewRepository(connection)
	var userId = seedUser(t, connection, "owner@example.com")
	var otherId = seedUser(t, connection, "other@example.com")

	photo, err := repository.AddPhoto(userId, "assets/uploads/holly.jpg", "")
	require.NoError(t, err)

	_, deleted := repository.DeletePhoto(photo.Id, otherId)
	assert.False(t, deleted)

	path, deleted := repository.DeletePhoto(photo.Id, userId)
	assert.True(t, deleted)
	assert.Equal(t, "assets/uploads/holly.jpg", path)

	_, deleted = repository.DeletePhoto(photo.Id, userId)
	assert.False(t, deleted)
}
