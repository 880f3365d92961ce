package photos

import "time"

// Photo references an uploaded album file by its stored path; the bytes themselves
// live on disk, under the uploads directory.
type Photo struct {
	Id      int64
	UserId  int64
	Path    string
	Caption string
	Created time.Time
}
