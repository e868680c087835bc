package services

import (
	"context"

	"github.com/classlens/admin-panel/internal/app/models"
	"github.com/classlens/admin-panel/internal/app/models/dto"
	"github.com/classlens/admin-panel/internal/classlens"
)

// SubjectForm is the subject create/update form.
type SubjectForm struct {
	Code        string `form:"code" binding:"required"`
	Name        string `form:"name" binding:"required"`
	Description string `form:"description"`
}

// SubjectService handles subject page operations.
type SubjectService struct {
	api *classlens.Client
}

// NewSubjectService creates a new subject service instance.
func NewSubjectService(api *classlens.Client) *SubjectService {
	return &SubjectService{api: api}
}

// List fetches the subject list and applies the search filter.
func (s *SubjectService) List(ctx context.Context, token, query string) ([]models.Subject, []models.Subject, error) {
	subjects, err := s.api.Subjects(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	return subjects, FilterSubjects(subjects, query), nil
}

// Get fetches a single subject for the edit form.
func (s *SubjectService) Get(ctx context.Context, token, id string) (models.Subject, error) {
	return s.api.Subject(ctx, token, id)
}

// Save creates the subject when id is empty and updates it otherwise.
func (s *SubjectService) Save(ctx context.Context, token, id string, form SubjectForm) error {
	payload := dto.SubjectPayload(form.Code, form.Name, form.Description)
	if id == "" {
		return s.api.CreateSubject(ctx, token, payload)
	}
	return s.api.UpdateSubject(ctx, token, id, payload)
}

// Delete removes a subject.
func (s *SubjectService) Delete(ctx context.Context, token, id string) error {
	return s.api.Delete(ctx, token, classlens.ResourceSubjects, id)
}
