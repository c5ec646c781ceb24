package documents

import (
	"time"

	"github.com/google/uuid"
)

// Document is metadata for a file attached to an application (CV, cover
// letter, offer). Blob storage lives elsewhere; only the URL is kept.
type Document struct {
	ID            uuid.UUID `json:"id"`
	ApplicationID uuid.UUID `json:"applicationId"`
	FileName      string    `json:"fileName"`
	FileType      string    `json:"fileType,omitempty"`
	FileURL       string    `json:"fileUrl"`
	CreatedAt     time.Time `json:"createdAt"`
}
