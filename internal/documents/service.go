package documents

import (
	"context"

	"github.com/google/uuid"
)

// Service handles document metadata logic.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the documents of an owned application.
func (s *Service) List(ctx context.Context, userID, applicationID uuid.UUID) ([]Document, error) {
	return s.repo.ListByApplication(ctx, userID, applicationID)
}

// Attach records document metadata against an owned application.
func (s *Service) Attach(ctx context.Context, userID, applicationID uuid.UUID, fileName, fileType, fileURL string) (*Document, error) {
	doc := &Document{
		ID:            uuid.New(),
		ApplicationID: applicationID,
		FileName:      fileName,
		FileType:      fileType,
		FileURL:       fileURL,
	}
	if err := s.repo.Create(ctx, userID, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Delete removes owned document metadata.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}
