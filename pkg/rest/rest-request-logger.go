package rest

import (
	"net/http"

	"github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"
)

// RequestLogger returns a middleware which tags each request with a unique id
// and logs its method and path through the engine's base logger.
func (e *Engine) RequestLogger() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			reqUUID, err := uuid.NewV4()
			if err != nil {
				e.baseLogger.WithError(err).Error("can't generate a request UUID")
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			e.baseLogger.WithFields(logrus.Fields{
				"reqid":     reqUUID.String(),
				"remote-ip": r.RemoteAddr,
			}).Debugf("%s %s", r.Method, r.URL.Path)

			next.ServeHTTP(w, r)
		})
	}
}
