package auth

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
)

/* There are two solutions to avoiding cyclic imports between `auth` and `users` packages:
1. merge the two in the users package
2. adopt and maintain an interface as a dependency in the auth package
*/

const userIdKey = "userId"

// Identity is the minimal principal returned by a successful login,
// which callers stash in their session boundary of choice.
type Identity struct {
	Id    int64
	Email string
}

type userChecker interface {
	ExistsUserId(id int64) bool
}

// Auth gates owner-scoped routes, ensuring that requests carry the identifier of an
// existing user, as previously handed out by a successful login.
func Auth(ur userChecker) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, request *http.Request) {

			var id, err = parseBearer(request)

			if err != nil {
				reportUnauthorised(w)
				return
			}

			// verify the user exists
			if ur.ExistsUserId(id) {
				// create a new context, stemming from the original one, adding the user's id for future reference
				next.ServeHTTP(w, request.WithContext(context.WithValue(request.Context(), userIdKey, id)))
			} else {
				reportUnauthorised(w)
			}

		})
	}
}

// parseBearer extracts the user id from the authorization header.
func parseBearer(request *http.Request) (int64, error) {
	var header = request.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		if userId, err := strconv.ParseInt(header[7:], 10, 64); err == nil && userId > 0 {
			return userId, nil
		}
	}
	return 0, errors.New("bad authorization header")
}

// GetUserId returns the requester's id, as previously verified and stored by the Auth
// middleware; routes lacking the middleware yield a zero id, which matches no user.
func GetUserId(request *http.Request) int64 {
	if id, ok := request.Context().Value(userIdKey).(int64); ok {
		return id
	}
	return 0
}

func reportUnauthorised(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
}
