package dailylogs

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/silvermint/pawtrack/pkg/ndate"
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

// seedPet creates a user and one of their pets, returning both identifiers.
func seedPet(t *testing.T, connection *sql.DB, species string) (userId, petId int64) {
	t.Helper()

	result, err := connection.Exec("INSERT INTO users (email, password_hash) VALUES ('owner@example.com', x'00')")
	require.NoError(t, err)
	userId, err = result.LastInsertId()
	require.NoError(t, err)

	result, err = connection.Exec(
		"INSERT INTO pets (user_id, name, species, birth) VALUES (?, 'Mochi', ?, '2020-06-01')",
		userId, species,
	)
	require.NoError(t, err)
	petId, err = result.LastInsertId()
	require.NoError(t, err)

	return userId, petId
}

func logDate(t *testing.T, value string) ndate.Date {
	t.Helper()
	date, err := ndate.Parse(value)
	require.NoError(t, err)
	return date
}

func TestUpsert_InsertsAndReports(t *testing.T) {
	var connection = openTestStorage(t)
	var repository = NewRepository(connection)
	var userId, petId = seedPet(t, connection, "cat")

	saved, report, err := repository.Upsert(AddLogData{
		PetId:    petId,
		Date:     logDate(t, "2024-05-01"),
		Weight:   floatPtr(4.0),
		Food:     floatPtr(90.0),
		Water:    floatPtr(220.0),
		Activity: floatPtr(20.0),
		Notes:    "lively",
	}, userId)
	require.NoError(t, err)

	assert.Positive(t, saved.Id)
	assert.Equal(t, userId, saved.UserId)
	assert.Equal(t, "2024-05-01", saved.Date.String())
	require.NotNil(t, saved.Weight)
	assert.InDelta(t, 4.0, *saved.Weight, 0.001)
	assert.Equal(t, "lively", saved.Notes)

	assert.Equal(t, Adequate, report.Food)
	assert.Equal(t, Adequate, report.Water)
	assert.Equal(t, Adequate, report.Activity)
}

func TestUpsert_OverwritesTheSameDay(t *testing.T) {
	var connection = openTestStorage(t)
	var repository = NewRepository(connection)
	var userId, petId = seedPet(t, connection, "dog")
	var date = logDate(t, "2024-05-01")

	first, _, err := repository.Upsert(AddLogData{
		PetId: petId, Date: date, Weight: floatPtr(10.0), Notes: "morning walk",
	}, userId)
	require.NoError(t, err)

	second, _, err := repository.Upsert(AddLogData{
		PetId: petId, Date: date, Weight: floatPtr(10.4), Food: floatPtr(180.0),
	}, userId)
	require.NoError(t, err)

	// the later submission settles on the same row, with overwritten fields
	assert.Equal(t, first.Id, second.Id)
	assert.InDelta(t, 10.4, *second.Weight, 0.001)
	require.NotNil(t, second.Food)
	assert.InDelta(t, 180.0, *second.Food, 0.001)
	assert.Empty(t, second.Notes)

	var count int
	require.NoError(t, connection.QueryRow(
		"SELECT count(*) FROM daily_logs WHERE pet_id = ?", petId,
	).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestUpsert_RejectsForeignPets(t *testing.T) {
	var connection = openTestStorage(t)
	var repository = NewRepository(connection)
	var _, petId = seedPet(t, connection, "cat")

	result, err := connection.Exec("INSERT INTO users (email, password_hash) VALUES ('other@example.com', x'00')")
	require.NoError(t, err)
	otherId, err := result.LastInsertId()
	require.NoError(t, err)

	_, _, err = repository.Upsert(AddLogData{
		PetId: petId, Date: logDate(t, "2024-05-01"), Weight: floatPtr(4.0),
	}, otherId)
	assert.ErrorIs(t, err, ErrPetNotFound)
}

func TestGetLogs_DescendsByDate(t *testing.T) {
	var connection = openTestStorage(t)
	var repository = NewRepository(connection)
	var userId, petId = seedPet(t, connection, "cat")

	for _, day := range []string{"2024-05-01", "2024-05-03", "2024-05-02"} {
		_, _, err := repository.Upsert(AddLogData{
			PetId: petId, Date: logDate(t, day), Weight: floatPtr(4.0),
		}, userId)
		require.NoError(t, err)
	}

	logs, err := repository.GetLogs(petId, userId)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, "2024-05-03", logs[0].Date.String())
	assert.Equal(t, "2024-05-02", logs[1].Date.String())
	assert.Equal(t, "2024-05-01", logs[2].Date.String())
}

func TestGetRecentWeights_SkipsStaleAndMissingEntries(t *testing.T) {
	var connection = openTestStorage(t)
	var repository = NewRepository(connection)
	var userId, petId = seedPet(t, connection, "dog")

	var today = time.Now().UTC()
	var yesterday = today.AddDate(0, 0, -1).Format("2006-01-02")
	var lastMonth = today.AddDate(0, -1, 0).Format("2006-01-02")

	_, _, err := repository.Upsert(AddLogData{
		PetId: petId, Date: logDate(t, yesterday), Weight: floatPtr(10.2),
	}, userId)
	require.NoError(t, err)

	// a recent log without a weight contributes nothing to the series
	_, _, err = repository.Upsert(AddLogData{
		PetId: petId, Date: logDate(t, today.Format("2006-01-02")), Food: floatPtr(200.0),
	}, userId)
	require.NoError(t, err)

	_, _, err = repository.Upsert(AddLogData{
		PetId: petId, Date: logDate(t, lastMonth), Weight: floatPtr(11.0),
	}, userId)
	require.NoError(t, err)

	weights, err := repository.GetRecentWeights(petId, userId, 7)
	require.NoError(t, err)
	require.Len(t, weights, 1)
	assert.Equal(t, yesterday, weights[0].Date.String())
	assert.InDelta(t, 10.2, weights[0].Weight, 0.001)
}
