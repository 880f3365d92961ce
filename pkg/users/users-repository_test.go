package users

import (
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/silvermint/pawtrack/pkg/auth"
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

func signUpData(email, password string) SignUpData {
	return SignUpData{Email: email, Password: password, PasswordConfirm: password}
}

func TestRegister_ThenLogin(t *testing.T) {
	var repository = NewRepository(openTestStorage(t))

	user, err := repository.Register(signUpData(" Holly@Example.COM ", "abcdef12"))
	require.NoError(t, err)
	assert.Equal(t, "holly@example.com", user.Email)
	assert.Positive(t, user.Id)

	identity, err := repository.Login(SignInData{Email: "holly@example.com", Password: "abcdef12"})
	require.NoError(t, err)
	assert.Equal(t, auth.Identity{Id: user.Id, Email: "holly@example.com"}, identity)
}

func TestRegister_RejectsInvalidEmails(t *testing.T) {
	var repository = NewRepository(openTestStorage(t))

	for _, email := range []string{"", "plain", "missing@dot", "@example.com"} {
		_, err := repository.Register(signUpData(email, "abcdef12"))
		assert.ErrorIs(t, err, ErrInvalidEmail, "email %q", email)
	}
}

func TestRegister_RejectsWeakPasswords(t *testing.T) {
	var repository = NewRepository(openTestStorage(t))

	tests := []struct {
		password string
		expected error
	}{
		{"short1", auth.ErrPasswordLength},
		{"abcdefgh", auth.ErrPasswordDigit},
		{"12345678", auth.ErrPasswordLetter},
	}
	for _, tc := range tests {
		_, err := repository.Register(signUpData("weak@example.com", tc.password))
		assert.ErrorIs(t, err, tc.expected, "password %q", tc.password)
	}
}

func TestRegister_ChecksEmailFormatBeforePasswordPolicy(t *testing.T) {
	var repository = NewRepository(openTestStorage(t))

	_, err := repository.Register(signUpData("not an email", "short1"))
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestRegister_RejectsNormalisedDuplicates(t *testing.T) {
	var repository = NewRepository(openTestStorage(t))

	_, err := repository.Register(signUpData("A@B.com", "abcdef12"))
	require.NoError(t, err)

	// case and whitespace variants collapse onto the registered address
	_, err = repository.Register(signUpData("a@b.com ", "ghijkl34"))
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_ConcurrentSignupsYieldOneRow(t *testing.T) {
	var connection = openTestStorage(t)
	var repository = NewRepository(connection)

	var waitGroup sync.WaitGroup
	var outcomes = make(chan error, 2)
	for i := 0; i < 2; i++ {
		waitGroup.Add(1)
		go func() {
			defer waitGroup.Done()
			_, err := repository.Register(signUpData("race@example.com", "abcdef12"))
			outcomes <- err
		}()
	}
	waitGroup.Wait()
	close(outcomes)

	var successes int
	for err := range outcomes {
		if err == nil {
			successes++
		}
	}
	assert.LessOrEqual(t, successes, 1)

	// regardless of which signup lost, the unique constraint leaves a single row
	var count int
	require.NoError(t, connection.QueryRow(
		"SELECT count(*) FROM users WHERE email = 'race@example.com'",
	).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestLogin_DistinguishesUnknownEmailsFromWrongPasswords(t *testing.T) {
	var repository = NewRepository(openTestStorage(t))

	_, err := repository.Register(signUpData("real@x.com", "abcdef12"))
	require.NoError(t, err)

	_, err = repository.Login(SignInData{Email: "nouser@x.com", Password: "whatever1"})
	assert.ErrorIs(t, err, ErrUnknownEmail)

	_, err = repository.Login(SignInData{Email: "real@x.com", Password: "wrongpass1"})
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestLogin_NormalisesTheEmail(t *testing.T) {
	var repository = NewRepository(openTestStorage(t))

	_, err := repository.Register(signUpData("kiki@example.com", "abcdef12"))
	require.NoError(t, err)

	identity, err := repository.Login(SignInData{Email: "  KIKI@example.com", Password: "abcdef12"})
	require.NoError(t, err)
	assert.Equal(t, "kiki@example.com", identity.Email)
}

func TestExistsUserId(t *testing.T) {
	var repository = NewRepository(openTestStorage(t))

	user, err := repository.Register(signUpData("exists@example.com", "abcdef12"))
	require.NoError(t, err)

	assert.True(t, repository.ExistsUserId(user.Id))
	assert.False(t, repository.ExistsUserId(user.Id+1))
	assert.False(t, repository.ExistsUserId(0))
}

func TestGetUserById(t *testing.T) {
	var repository = NewRepository(openTestStorage(t))

	registered, err := repository.Register(signUpData("fetch@example.com", "abcdef12"))
	require.NoError(t, err)

	user, err := repository.GetUserById(registered.Id)
	require.NoError(t, err)
	assert.Equal(t, "fetch@example.com", user.Email)

	_, err = repository.GetUserById(registered.Id + 1)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSignUpData_RequiresMatchingConfirmation(t *testing.T) {
	var data = SignUpData{Email: "a@b.com", Password: "abcdef12", PasswordConfirm: "abcdef13"}
	assert.Error(t, data.Validate())

	data.PasswordConfirm = "abcdef12"
	assert.NoError(t, data.Validate())
}
