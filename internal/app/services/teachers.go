package services

import (
	"context"

	"github.com/classlens/admin-panel/internal/app/models"
	"github.com/classlens/admin-panel/internal/app/models/dto"
	"github.com/classlens/admin-panel/internal/classlens"
)

// TeacherForm is the teacher create/update form.
type TeacherForm struct {
	Name       string `form:"name" binding:"required"`
	Email      string `form:"email" binding:"required"`
	Phone      string `form:"phone"`
	Department string `form:"department"`
}

// TeacherService handles teacher page operations.
type TeacherService struct {
	api *classlens.Client
}

// NewTeacherService creates a new teacher service instance.
func NewTeacherService(api *classlens.Client) *TeacherService {
	return &TeacherService{api: api}
}

// List fetches the teacher list and applies the client-side filters.
func (s *TeacherService) List(ctx context.Context, token string, f Filter) ([]models.Teacher, []models.Teacher, error) {
	teachers, err := s.api.Teachers(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	return teachers, FilterTeachers(teachers, f), nil
}

// Get fetches a single teacher for the edit form.
func (s *TeacherService) Get(ctx context.Context, token, id string) (models.Teacher, error) {
	return s.api.Teacher(ctx, token, id)
}

// Departments fetches the department reference list for the form select.
func (s *TeacherService) Departments(ctx context.Context, token string) ([]models.Department, error) {
	return s.api.Departments(ctx, token)
}

// Save creates the teacher when id is empty and updates it otherwise.
func (s *TeacherService) Save(ctx context.Context, token, id string, form TeacherForm) error {
	payload := dto.TeacherPayload(form.Name, form.Email, form.Phone, form.Department)
	if id == "" {
		return s.api.CreateTeacher(ctx, token, payload)
	}
	return s.api.UpdateTeacher(ctx, token, id, payload)
}

// Delete removes a teacher.
func (s *TeacherService) Delete(ctx context.Context, token, id string) error {
	return s.api.Delete(ctx, token, classlens.ResourceTeachers, id)
}
