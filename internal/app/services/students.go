package services

import (
	"context"
	"strconv"

	"github.com/classlens/admin-panel/internal/app/models"
	"github.com/classlens/admin-panel/internal/app/models/dto"
	"github.com/classlens/admin-panel/internal/classlens"
)

// StudentForm is the student create/update form.
type StudentForm struct {
	Name       string `form:"name" binding:"required"`
	Email      string `form:"email" binding:"required"`
	PRN        string `form:"prn"`
	Year       string `form:"year"`
	Department string `form:"department"`
}

// StudentService handles student page operations.
type StudentService struct {
	api *classlens.Client
}

// NewStudentService creates a new student service instance.
func NewStudentService(api *classlens.Client) *StudentService {
	return &StudentService{api: api}
}

// Page fetches one server-side page of students and applies the client-side
// filters within it. Search and filters deliberately scope to the loaded
// page, not the whole collection.
func (s *StudentService) Page(ctx context.Context, token string, page int, f Filter) (models.StudentPage, []models.Student, error) {
	loaded, err := s.api.Students(ctx, token, page)
	if err != nil {
		return models.StudentPage{}, nil, err
	}
	return loaded, FilterStudents(loaded.Items, f), nil
}

// Get fetches a single student for the edit form.
func (s *StudentService) Get(ctx context.Context, token, id string) (models.Student, error) {
	return s.api.Student(ctx, token, id)
}

// Departments fetches the department reference list for the form select.
func (s *StudentService) Departments(ctx context.Context, token string) ([]models.Department, error) {
	return s.api.Departments(ctx, token)
}

// ReconcileDepartment resolves a department supplied as a display name into
// the matching id once the reference list is available. Values that are
// already ids, or names with no match, pass through unchanged.
func ReconcileDepartment(value string, departments []models.Department) string {
	if value == "" {
		return value
	}
	if _, err := strconv.ParseInt(value, 10, 64); err == nil {
		return value
	}
	for _, d := range departments {
		if d.Name == value {
			return strconv.FormatInt(d.ID, 10)
		}
	}
	return value
}

// Save creates the student when id is empty and updates it otherwise.
func (s *StudentService) Save(ctx context.Context, token, id string, form StudentForm) error {
	payload := dto.StudentPayload(form.Name, form.Email, form.PRN, form.Year, form.Department)
	if id == "" {
		return s.api.CreateStudent(ctx, token, payload)
	}
	return s.api.UpdateStudent(ctx, token, id, payload)
}

// Delete removes a student.
func (s *StudentService) Delete(ctx context.Context, token, id string) error {
	return s.api.Delete(ctx, token, classlens.ResourceStudents, id)
}
