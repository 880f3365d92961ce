package rest

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
)

// ParamId parses a numeric identifier from the named route segment.
func ParamId(request *http.Request, name string) (int64, error) {
	return strconv.ParseInt(httprouter.ParamsFromContext(request.Context()).ByName(name), 10, 64)
}
