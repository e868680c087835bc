package services

import (
	"context"

	"github.com/classlens/admin-panel/internal/app/models"
	"github.com/classlens/admin-panel/internal/app/models/dto"
	"github.com/classlens/admin-panel/internal/classlens"
)

// EnrollmentForm is the student-enrollment create/update form.
type EnrollmentForm struct {
	StudentPRN string `form:"student_prn"`
	Subject    string `form:"subject" binding:"required"`
}

// EnrollmentService handles student-enrollment page operations.
type EnrollmentService struct {
	api *classlens.Client
}

// NewEnrollmentService creates a new enrollment service instance.
func NewEnrollmentService(api *classlens.Client) *EnrollmentService {
	return &EnrollmentService{api: api}
}

// List fetches the enrollment list and applies the search filter.
func (s *EnrollmentService) List(ctx context.Context, token, query string) ([]models.Enrollment, []models.Enrollment, error) {
	enrollments, err := s.api.Enrollments(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	return enrollments, FilterEnrollments(enrollments, query), nil
}

// Get fetches a single enrollment for the edit form.
func (s *EnrollmentService) Get(ctx context.Context, token, id string) (models.Enrollment, error) {
	return s.api.Enrollment(ctx, token, id)
}

// Subjects fetches the subject reference list for the form select.
func (s *EnrollmentService) Subjects(ctx context.Context, token string) ([]models.Subject, error) {
	return s.api.Subjects(ctx, token)
}

// Save creates the enrollment when id is empty and updates it otherwise.
// The student PRN is immutable after creation; on update the stored value
// wins over whatever the form carried.
func (s *EnrollmentService) Save(ctx context.Context, token, id string, form EnrollmentForm) error {
	if id == "" {
		return s.api.CreateEnrollment(ctx, token, dto.EnrollmentPayload(form.StudentPRN, form.Subject))
	}
	existing, err := s.api.Enrollment(ctx, token, id)
	if err != nil {
		return err
	}
	return s.api.UpdateEnrollment(ctx, token, id, dto.EnrollmentPayload(existing.StudentPRN, form.Subject))
}

// Delete removes an enrollment.
func (s *EnrollmentService) Delete(ctx context.Context, token, id string) error {
	return s.api.Delete(ctx, token, classlens.ResourceEnrollments, id)
}
