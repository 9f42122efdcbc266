package sqlite

import (
	"time"

	"github.com/google/uuid"
)

// UploadedFile is the metadata of a stored upload.
type UploadedFile struct {
	ID         uuid.UUID `json:"id"`
	Filename   string    `json:"filename"`
	FilePath   string    `json:"file_path"`
	UploadedAt time.Time `json:"uploaded_at"`
}
