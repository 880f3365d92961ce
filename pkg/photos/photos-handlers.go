package photos

import (
	"errors"
	"net/http"

	"github.com/silvermint/pawtrack/pkg/auth"
	JSON "github.com/silvermint/pawtrack/pkg/json-utilities"
	"github.com/silvermint/pawtrack/pkg/rest"
	"github.com/silvermint/pawtrack/pkg/storage/uploads"
	"github.com/silvermint/pawtrack/pkg/users"
)

const maxUploadBytes = 32 << 20
const maxCaptionLength = 200

func RegisterHandlers(engine rest.Engine, phr PhotoRepository, store uploads.Storage, ur users.UserRepository) {
	engine.Get("/photos", getPhotos(phr, store), auth.Auth(ur))
	engine.Post("/photos", addPhoto(phr, store), auth.Auth(ur))
	engine.Delete("/photos/:id", deletePhoto(phr, store), auth.Auth(ur))
}

// getPhotos lists the requester's album and opportunistically heals it: rows whose
// backing file vanished from disk are dropped from the table and elided from the response.
func getPhotos(phr PhotoRepository, store uploads.Storage) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		var userId = auth.GetUserId(request)

		album, err := phr.GetPhotos(userId)
		if err != nil {
			JSON.InternalServerError(writer, err)
			return
		}

		var surviving = make([]Photo, 0, len(album))
		for _, photo := range album {
			if store.Exists(photo.Path) {
				surviving = append(surviving, photo)
				continue
			}
			phr.DeletePhoto(photo.Id, userId)
		}

		JSON.Ok(writer, surviving)
	}
}

func addPhoto(phr PhotoRepository, store uploads.Storage) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		// ParseMultipartForm alone only bounds in-memory buffering; the reader
		// enforces the actual request size cap
		request.Body = http.MaxBytesReader(writer, request.Body, maxUploadBytes)
		if err := request.ParseMultipartForm(maxUploadBytes); err != nil {
			JSON.BadRequestWithMessage(writer, "the upload is malformed or too large")
			return
		}

		var caption = request.FormValue("caption")
		if len(caption) > maxCaptionLength {
			JSON.BadRequestWithMessage(writer, "the caption is too long")
			return
		}

		file, header, err := request.FormFile("file")
		if err != nil {
			JSON.BadRequestWithMessage(writer, "a file is required")
			return
		}
		defer func() {
			_ = file.Close()
		}()

		path, err := store.Save(file, header.Filename)
		switch {
		case errors.Is(err, uploads.ErrUnsupportedFormat):
			JSON.BadRequestWithMessage(writer, err.Error())
			return
		case err != nil:
			JSON.InternalServerError(writer, err)
			return
		}

		newPhoto, err := phr.AddPhoto(auth.GetUserId(request), path, caption)
		if err != nil {
			// dispose of the orphaned file rather than leaving it to the self-heal pass
			_ = store.Remove(path)
			JSON.InternalServerError(writer, err)
			return
		}

		JSON.Created(writer, newPhoto)
	}
}

func deletePhoto(phr PhotoRepository, store uploads.Storage) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		photoId, err := rest.ParamId(request, "id")
		if err != nil {
			JSON.BadRequest(writer)
			return
		}

		// issues a bad request regardless of authorisation issues to deny information about existing resources
		path, deleted := phr.DeletePhoto(photoId, auth.GetUserId(request))
		if !deleted {
			JSON.BadRequest(writer)
			return
		}

		if err = store.Remove(path); err != nil {
			JSON.InternalServerError(writer, err)
			return
		}
		JSON.NoContent(writer)
	}
}
