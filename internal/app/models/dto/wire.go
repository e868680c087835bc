package dto

import (
	"encoding/json"

	"github.com/classlens/admin-panel/internal/app/models"
)

// One wire struct per entity, each carrying every key name the backend has
// been observed to use for a field. Normalization picks the first present,
// in declared order.

// StudentWire is the raw student row.
type StudentWire struct {
	ID        FlexString `json:"id"`
	PK        FlexString `json:"pk"`
	StudentID FlexString `json:"student_id"`

	Name  string `json:"name"`
	Email string `json:"email"`

	PRN        FlexString `json:"prn"`
	RollNumber FlexString `json:"roll_number"`
	RollNo     FlexString `json:"roll_no"`

	Year   FlexString `json:"year"`
	Class  FlexString `json:"class"`
	YearOf FlexString `json:"year_of"`

	Department     json.RawMessage `json:"department"`
	DepartmentID   FlexString      `json:"department_id"`
	DepartmentName string          `json:"department_name"`
}

// Student maps the wire row into the normalized entity.
func (w StudentWire) Student() models.Student {
	department, departmentName := departmentParts(w.Department, w.DepartmentID, w.DepartmentName)
	return models.Student{
		ID:             firstString(w.ID, w.PK, w.StudentID),
		Name:           w.Name,
		Email:          w.Email,
		PRN:            firstString(w.PRN, w.RollNumber, w.RollNo),
		Year:           firstString(w.Year, w.Class, w.YearOf),
		Department:     department,
		DepartmentName: departmentName,
	}
}

// StudentListWire is the student collection response. The endpoint paginates
// DRF-style ({count, results, next, previous}) but a bare array is accepted
// too, with count taken from its length.
type StudentListWire struct {
	Count   int
	Results []StudentWire
}

// UnmarshalJSON implements json.Unmarshaler.
func (w *StudentListWire) UnmarshalJSON(data []byte) error {
	var asArray []StudentWire
	if err := json.Unmarshal(data, &asArray); err == nil {
		w.Results = asArray
		w.Count = len(asArray)
		return nil
	}

	var asObject struct {
		Count   *int          `json:"count"`
		Results []StudentWire `json:"results"`
	}
	if err := json.Unmarshal(data, &asObject); err != nil {
		return err
	}
	w.Results = asObject.Results
	if asObject.Count != nil {
		w.Count = *asObject.Count
	} else {
		w.Count = len(asObject.Results)
	}
	return nil
}

// Students maps all rows of the page.
func (w StudentListWire) Students() []models.Student {
	students := make([]models.Student, 0, len(w.Results))
	for _, row := range w.Results {
		students = append(students, row.Student())
	}
	return students
}

// TeacherWire is the raw teacher row.
type TeacherWire struct {
	ID FlexString `json:"id"`
	PK FlexString `json:"pk"`

	Name  string     `json:"name"`
	Email string     `json:"email"`
	Phone FlexString `json:"phone"`

	Department     json.RawMessage `json:"department"`
	DepartmentID   FlexString      `json:"department_id"`
	DepartmentName string          `json:"department_name"`
}

// Teacher maps the wire row into the normalized entity.
func (w TeacherWire) Teacher() models.Teacher {
	department, departmentName := departmentParts(w.Department, w.DepartmentID, w.DepartmentName)
	return models.Teacher{
		ID:             firstString(w.ID, w.PK),
		Name:           w.Name,
		Email:          w.Email,
		Phone:          string(w.Phone),
		Department:     department,
		DepartmentName: departmentName,
	}
}

// Teachers maps a list of wire rows.
func Teachers(rows []TeacherWire) []models.Teacher {
	teachers := make([]models.Teacher, 0, len(rows))
	for _, row := range rows {
		teachers = append(teachers, row.Teacher())
	}
	return teachers
}

// SubjectWire is the raw subject row.
type SubjectWire struct {
	ID          FlexInt64 `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// Subject maps the wire row into the normalized entity.
func (w SubjectWire) Subject() models.Subject {
	return models.Subject{
		ID:          w.ID.Int64(),
		Code:        w.Code,
		Name:        w.Name,
		Description: w.Description,
	}
}

// Subjects maps a list of wire rows.
func Subjects(rows []SubjectWire) []models.Subject {
	subjects := make([]models.Subject, 0, len(rows))
	for _, row := range rows {
		subjects = append(subjects, row.Subject())
	}
	return subjects
}

// SubjectDetailWire is an embedded subject reference inside a mapping.
type SubjectDetailWire struct {
	ID   FlexInt64 `json:"id"`
	Code string    `json:"code"`
	Name string    `json:"name"`
}

// MappingWire is the raw subject-from-department row.
type MappingWire struct {
	ID             FlexInt64           `json:"id"`
	Department     FlexInt64           `json:"department"`
	DepartmentName string              `json:"department_name"`
	Year           FlexInt64           `json:"year"`
	Semester       FlexInt64           `json:"semester"`
	SubjectDetails []SubjectDetailWire `json:"subject_details"`
}

// Mapping maps the wire row into the normalized entity.
func (w MappingWire) Mapping() models.SubjectMapping {
	subjects := make([]models.SubjectDetail, 0, len(w.SubjectDetails))
	for _, s := range w.SubjectDetails {
		subjects = append(subjects, models.SubjectDetail{
			ID:   s.ID.Int64(),
			Code: s.Code,
			Name: s.Name,
		})
	}
	return models.SubjectMapping{
		ID:             w.ID.Int64(),
		Department:     w.Department.Int64(),
		DepartmentName: w.DepartmentName,
		Year:           int(w.Year.Int64()),
		Semester:       int(w.Semester.Int64()),
		Subjects:       subjects,
	}
}

// Mappings maps a list of wire rows.
func Mappings(rows []MappingWire) []models.SubjectMapping {
	mappings := make([]models.SubjectMapping, 0, len(rows))
	for _, row := range rows {
		mappings = append(mappings, row.Mapping())
	}
	return mappings
}

// EnrollmentWire is the raw student-enrollment row.
type EnrollmentWire struct {
	ID          FlexInt64  `json:"id"`
	StudentPRN  FlexString `json:"student_prn"`
	Subject     FlexInt64  `json:"subject"`
	SubjectName string     `json:"subject_name"`
	SubjectCode string     `json:"subject_code"`
}

// Enrollment maps the wire row into the normalized entity.
func (w EnrollmentWire) Enrollment() models.Enrollment {
	return models.Enrollment{
		ID:          w.ID.Int64(),
		StudentPRN:  string(w.StudentPRN),
		Subject:     w.Subject.Int64(),
		SubjectName: w.SubjectName,
		SubjectCode: w.SubjectCode,
	}
}

// Enrollments maps a list of wire rows.
func Enrollments(rows []EnrollmentWire) []models.Enrollment {
	enrollments := make([]models.Enrollment, 0, len(rows))
	for _, row := range rows {
		enrollments = append(enrollments, row.Enrollment())
	}
	return enrollments
}

// AdminUserWire is the raw admin-user row. Password is write-only and never
// read back.
type AdminUserWire struct {
	ID       FlexString `json:"id"`
	PK       FlexString `json:"pk"`
	Username string     `json:"username"`
	IsActive bool       `json:"is_active"`
}

// AdminUser maps the wire row into the normalized entity.
func (w AdminUserWire) AdminUser() models.AdminUser {
	return models.AdminUser{
		ID:       firstString(w.ID, w.PK),
		Username: w.Username,
		IsActive: w.IsActive,
	}
}

// AdminUsers maps a list of wire rows.
func AdminUsers(rows []AdminUserWire) []models.AdminUser {
	users := make([]models.AdminUser, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.AdminUser())
	}
	return users
}

// DepartmentWire is the raw department reference row.
type DepartmentWire struct {
	ID             FlexInt64 `json:"id"`
	PK             FlexInt64 `json:"pk"`
	DepartmentID   FlexInt64 `json:"department_id"`
	Name           string    `json:"name"`
	DepartmentName string    `json:"department_name"`
	Title          string    `json:"title"`
}

// Department maps the wire row into the normalized entity.
func (w DepartmentWire) Department() models.Department {
	id := w.ID.Int64()
	if id == 0 {
		id = w.PK.Int64()
	}
	if id == 0 {
		id = w.DepartmentID.Int64()
	}
	name := w.Name
	if name == "" {
		name = w.DepartmentName
	}
	if name == "" {
		name = w.Title
	}
	return models.Department{ID: id, Name: name}
}

// Departments maps a list of wire rows.
func Departments(rows []DepartmentWire) []models.Department {
	departments := make([]models.Department, 0, len(rows))
	for _, row := range rows {
		departments = append(departments, row.Department())
	}
	return departments
}

// StatsWire is the raw overview counters response.
type StatsWire struct {
	TeachersCount FlexInt64 `json:"teachers_count"`
	StudentsCount FlexInt64 `json:"students_count"`
	SubjectsCount FlexInt64 `json:"subjects_count"`
}

// Stats maps the wire response into the normalized entity.
func (w StatsWire) Stats() models.Stats {
	return models.Stats{
		Teachers: w.TeachersCount.Int64(),
		Students: w.StudentsCount.Int64(),
		Subjects: w.SubjectsCount.Int64(),
	}
}

// LoginWire is the login/create-user response.
type LoginWire struct {
	Access   string `json:"access"`
	Refresh  string `json:"refresh"`
	Username string `json:"username"`
}
