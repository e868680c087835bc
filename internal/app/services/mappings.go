package services

import (
	"context"

	"github.com/classlens/admin-panel/internal/app/models"
	"github.com/classlens/admin-panel/internal/app/models/dto"
	"github.com/classlens/admin-panel/internal/classlens"
)

// MappingForm is the subject-from-department mapping create/update form.
// SubjectIDs comes from a multi-select checkbox group.
type MappingForm struct {
	Department string   `form:"department" binding:"required"`
	Year       string   `form:"year" binding:"required"`
	Semester   string   `form:"semester" binding:"required"`
	SubjectIDs []string `form:"subject_ids"`
}

// MappingService handles subject-from-department page operations.
type MappingService struct {
	api *classlens.Client
}

// NewMappingService creates a new mapping service instance.
func NewMappingService(api *classlens.Client) *MappingService {
	return &MappingService{api: api}
}

// List fetches the mapping list and applies the search filter.
func (s *MappingService) List(ctx context.Context, token, query string) ([]models.SubjectMapping, []models.SubjectMapping, error) {
	mappings, err := s.api.Mappings(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	return mappings, FilterMappings(mappings, query), nil
}

// Get fetches a single mapping for the edit form.
func (s *MappingService) Get(ctx context.Context, token, id string) (models.SubjectMapping, error) {
	return s.api.Mapping(ctx, token, id)
}

// FormData fetches the reference lists the mapping form needs.
func (s *MappingService) FormData(ctx context.Context, token string) ([]models.Department, []models.Subject, error) {
	departments, err := s.api.Departments(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	subjects, err := s.api.Subjects(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	return departments, subjects, nil
}

// Save creates the mapping when id is empty and updates it otherwise.
func (s *MappingService) Save(ctx context.Context, token, id string, form MappingForm) error {
	payload := dto.MappingPayload(form.Department, form.Year, form.Semester, form.SubjectIDs)
	if id == "" {
		return s.api.CreateMapping(ctx, token, payload)
	}
	return s.api.UpdateMapping(ctx, token, id, payload)
}

// Delete removes a mapping.
func (s *MappingService) Delete(ctx context.Context, token, id string) error {
	return s.api.Delete(ctx, token, classlens.ResourceMappings, id)
}
