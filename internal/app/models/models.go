package models

// Entities mirror backend rows after normalization. The panel holds no
// authoritative state: every value here is a transient copy of whatever the
// last fetch returned, discarded on the next page render.

// Student represents a student record. Department carries the raw value the
// backend sent (an id, a numeric string or a display name) because the
// backend is not consistent about it; DepartmentName is the resolved display
// name where one could be derived.
type Student struct {
	ID             string
	Name           string
	Email          string
	PRN            string
	Year           string
	Department     string
	DepartmentName string
}

// DepartmentLabel returns the value shown in the department column.
func (s Student) DepartmentLabel() string {
	if s.DepartmentName != "" {
		return s.DepartmentName
	}
	if s.Department != "" {
		return s.Department
	}
	return "-"
}

// Teacher represents a teacher record. Department has the same shape
// ambiguity as Student.Department.
type Teacher struct {
	ID             string
	Name           string
	Email          string
	Phone          string
	Department     string
	DepartmentName string
}

// DepartmentLabel returns the value shown in the department column.
func (t Teacher) DepartmentLabel() string {
	if t.DepartmentName != "" {
		return t.DepartmentName
	}
	if t.Department != "" {
		return t.Department
	}
	return "-"
}

// Subject represents a subject record.
type Subject struct {
	ID          int64
	Code        string
	Name        string
	Description string
}

// SubjectDetail is the embedded subject reference inside a mapping.
type SubjectDetail struct {
	ID   int64
	Code string
	Name string
}

// SubjectMapping associates a set of subjects with a department for a given
// year and semester.
type SubjectMapping struct {
	ID             int64
	Department     int64
	DepartmentName string
	Year           int
	Semester       int
	Subjects       []SubjectDetail
}

// Enrollment joins a student (by PRN) to a subject. StudentPRN is immutable
// after creation.
type Enrollment struct {
	ID          int64
	StudentPRN  string
	Subject     int64
	SubjectName string
	SubjectCode string
}

// AdminUser represents an admin account. The password is write-only and never
// part of the read model.
type AdminUser struct {
	ID       string
	Username string
	IsActive bool
}

// Department is read-only reference data used to populate select lists.
type Department struct {
	ID   int64
	Name string
}

// Stats holds the dashboard overview counters.
type Stats struct {
	Teachers int64
	Students int64
	Subjects int64
}

// StudentPage is one server-side page of students plus pagination bookkeeping.
type StudentPage struct {
	Items      []Student
	Count      int
	Page       int
	TotalPages int
}
