package classlens

import (
	"context"
	"strconv"

	"github.com/classlens/admin-panel/internal/app/models"
	"github.com/classlens/admin-panel/internal/app/models/dto"
)

// Teachers fetches the full teacher list.
func (c *Client) Teachers(ctx context.Context, token string) ([]models.Teacher, error) {
	var rows []dto.TeacherWire
	if err := c.getJSON(ctx, token, collectionPath(ResourceTeachers), nil, &rows); err != nil {
		return nil, err
	}
	return dto.Teachers(rows), nil
}

// Teacher fetches a single teacher.
func (c *Client) Teacher(ctx context.Context, token, id string) (models.Teacher, error) {
	var row dto.TeacherWire
	if err := c.getJSON(ctx, token, itemPath(ResourceTeachers, id), nil, &row); err != nil {
		return models.Teacher{}, err
	}
	return row.Teacher(), nil
}

// CreateTeacher creates a teacher.
func (c *Client) CreateTeacher(ctx context.Context, token string, payload map[string]interface{}) error {
	return c.create(ctx, token, ResourceTeachers, payload)
}

// UpdateTeacher updates a teacher.
func (c *Client) UpdateTeacher(ctx context.Context, token, id string, payload map[string]interface{}) error {
	return c.update(ctx, token, ResourceTeachers, id, payload)
}

// Students fetches one server-side page of students. The backend owns the
// page size; the configured size only feeds the page-count arithmetic.
func (c *Client) Students(ctx context.Context, token string, page int) (models.StudentPage, error) {
	if page < 1 {
		page = 1
	}
	var wire dto.StudentListWire
	query := map[string]string{"page": strconv.Itoa(page)}
	if err := c.getJSON(ctx, token, collectionPath(ResourceStudents), query, &wire); err != nil {
		return models.StudentPage{}, err
	}

	totalPages := 1
	if wire.Count > 0 {
		totalPages = (wire.Count + c.studentPageSize - 1) / c.studentPageSize
	}
	return models.StudentPage{
		Items:      wire.Students(),
		Count:      wire.Count,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

// Student fetches a single student.
func (c *Client) Student(ctx context.Context, token, id string) (models.Student, error) {
	var row dto.StudentWire
	if err := c.getJSON(ctx, token, itemPath(ResourceStudents, id), nil, &row); err != nil {
		return models.Student{}, err
	}
	return row.Student(), nil
}

// CreateStudent creates a student.
func (c *Client) CreateStudent(ctx context.Context, token string, payload map[string]interface{}) error {
	return c.create(ctx, token, ResourceStudents, payload)
}

// UpdateStudent updates a student.
func (c *Client) UpdateStudent(ctx context.Context, token, id string, payload map[string]interface{}) error {
	return c.update(ctx, token, ResourceStudents, id, payload)
}

// Subjects fetches the full subject list.
func (c *Client) Subjects(ctx context.Context, token string) ([]models.Subject, error) {
	var rows []dto.SubjectWire
	if err := c.getJSON(ctx, token, collectionPath(ResourceSubjects), nil, &rows); err != nil {
		return nil, err
	}
	return dto.Subjects(rows), nil
}

// Subject fetches a single subject.
func (c *Client) Subject(ctx context.Context, token, id string) (models.Subject, error) {
	var row dto.SubjectWire
	if err := c.getJSON(ctx, token, itemPath(ResourceSubjects, id), nil, &row); err != nil {
		return models.Subject{}, err
	}
	return row.Subject(), nil
}

// CreateSubject creates a subject.
func (c *Client) CreateSubject(ctx context.Context, token string, payload map[string]interface{}) error {
	return c.create(ctx, token, ResourceSubjects, payload)
}

// UpdateSubject updates a subject.
func (c *Client) UpdateSubject(ctx context.Context, token, id string, payload map[string]interface{}) error {
	return c.update(ctx, token, ResourceSubjects, id, payload)
}

// Mappings fetches the subject-from-department mapping list.
func (c *Client) Mappings(ctx context.Context, token string) ([]models.SubjectMapping, error) {
	var rows []dto.MappingWire
	if err := c.getJSON(ctx, token, collectionPath(ResourceMappings), nil, &rows); err != nil {
		return nil, err
	}
	return dto.Mappings(rows), nil
}

// Mapping fetches a single subject-from-department mapping.
func (c *Client) Mapping(ctx context.Context, token, id string) (models.SubjectMapping, error) {
	var row dto.MappingWire
	if err := c.getJSON(ctx, token, itemPath(ResourceMappings, id), nil, &row); err != nil {
		return models.SubjectMapping{}, err
	}
	return row.Mapping(), nil
}

// CreateMapping creates a subject-from-department mapping.
func (c *Client) CreateMapping(ctx context.Context, token string, payload map[string]interface{}) error {
	return c.create(ctx, token, ResourceMappings, payload)
}

// UpdateMapping updates a subject-from-department mapping.
func (c *Client) UpdateMapping(ctx context.Context, token, id string, payload map[string]interface{}) error {
	return c.update(ctx, token, ResourceMappings, id, payload)
}

// Enrollments fetches the student-enrollment list.
func (c *Client) Enrollments(ctx context.Context, token string) ([]models.Enrollment, error) {
	var rows []dto.EnrollmentWire
	if err := c.getJSON(ctx, token, collectionPath(ResourceEnrollments), nil, &rows); err != nil {
		return nil, err
	}
	return dto.Enrollments(rows), nil
}

// Enrollment fetches a single student enrollment.
func (c *Client) Enrollment(ctx context.Context, token, id string) (models.Enrollment, error) {
	var row dto.EnrollmentWire
	if err := c.getJSON(ctx, token, itemPath(ResourceEnrollments, id), nil, &row); err != nil {
		return models.Enrollment{}, err
	}
	return row.Enrollment(), nil
}

// CreateEnrollment creates a student enrollment.
func (c *Client) CreateEnrollment(ctx context.Context, token string, payload map[string]interface{}) error {
	return c.create(ctx, token, ResourceEnrollments, payload)
}

// UpdateEnrollment updates a student enrollment.
func (c *Client) UpdateEnrollment(ctx context.Context, token, id string, payload map[string]interface{}) error {
	return c.update(ctx, token, ResourceEnrollments, id, payload)
}

// AdminUsers fetches the admin-user list.
func (c *Client) AdminUsers(ctx context.Context, token string) ([]models.AdminUser, error) {
	var rows []dto.AdminUserWire
	if err := c.getJSON(ctx, token, collectionPath(ResourceAdminUsers), nil, &rows); err != nil {
		return nil, err
	}
	return dto.AdminUsers(rows), nil
}

// AdminUser fetches a single admin user.
func (c *Client) AdminUser(ctx context.Context, token, id string) (models.AdminUser, error) {
	var row dto.AdminUserWire
	if err := c.getJSON(ctx, token, itemPath(ResourceAdminUsers, id), nil, &row); err != nil {
		return models.AdminUser{}, err
	}
	return row.AdminUser(), nil
}

// CreateAdminUser creates an admin user.
func (c *Client) CreateAdminUser(ctx context.Context, token string, payload map[string]interface{}) error {
	return c.create(ctx, token, ResourceAdminUsers, payload)
}

// UpdateAdminUser updates an admin user.
func (c *Client) UpdateAdminUser(ctx context.Context, token, id string, payload map[string]interface{}) error {
	return c.update(ctx, token, ResourceAdminUsers, id, payload)
}
