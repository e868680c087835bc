package services

import (
	"strings"

	"github.com/classlens/admin-panel/internal/app/models"
)

// Filter is the client-side search/filter state of a resource page,
// evaluated on every render over whatever the last fetch returned.
type Filter struct {
	Query      string
	Year       string
	Department string
}

// matchesQuery reports whether the search query is a case-insensitive
// substring of any of the fields. A blank or whitespace-only query matches
// everything.
func matchesQuery(query string, fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// matchesYear applies the year dropdown: exact match, case-insensitive.
func matchesYear(filter, year string) bool {
	if filter == "" {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(year), strings.TrimSpace(filter))
}

// MatchesDepartment applies the department dropdown against the two forms a
// record's department can take after normalization: the raw value (id,
// numeric string or name) and the resolved display name. The filter matches
// on an exact raw id, a case-insensitive name substring, or a
// case-insensitive raw equality. The leniency is deliberate; the backend
// reports departments in several shapes and the filter has to meet all of
// them.
func MatchesDepartment(filter, department, departmentName string) bool {
	if filter == "" {
		return true
	}
	if department == filter {
		return true
	}
	if strings.Contains(strings.ToLower(departmentName), strings.ToLower(filter)) {
		return true
	}
	return strings.EqualFold(department, filter)
}

// FilterStudents applies year, department and search filters to one loaded
// page of students.
func FilterStudents(items []models.Student, f Filter) []models.Student {
	out := make([]models.Student, 0, len(items))
	for _, s := range items {
		if !matchesYear(f.Year, s.Year) {
			continue
		}
		if !MatchesDepartment(f.Department, s.Department, s.DepartmentName) {
			continue
		}
		if !matchesQuery(f.Query, s.Name, s.Email, s.PRN, s.DepartmentName) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// FilterTeachers applies department and search filters to the teacher list.
func FilterTeachers(items []models.Teacher, f Filter) []models.Teacher {
	out := make([]models.Teacher, 0, len(items))
	for _, t := range items {
		if !MatchesDepartment(f.Department, t.Department, t.DepartmentName) {
			continue
		}
		if !matchesQuery(f.Query, t.Name, t.Email, t.DepartmentName) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// FilterSubjects applies the search filter to the subject list.
func FilterSubjects(items []models.Subject, query string) []models.Subject {
	out := make([]models.Subject, 0, len(items))
	for _, s := range items {
		if matchesQuery(query, s.Name, s.Code) {
			out = append(out, s)
		}
	}
	return out
}

// FilterMappings applies the search filter to the mapping list, matching the
// department name or any mapped subject's code or name.
func FilterMappings(items []models.SubjectMapping, query string) []models.SubjectMapping {
	out := make([]models.SubjectMapping, 0, len(items))
	for _, m := range items {
		fields := []string{m.DepartmentName}
		for _, s := range m.Subjects {
			fields = append(fields, s.Code, s.Name)
		}
		if matchesQuery(query, fields...) {
			out = append(out, m)
		}
	}
	return out
}

// FilterEnrollments applies the search filter to the enrollment list.
func FilterEnrollments(items []models.Enrollment, query string) []models.Enrollment {
	out := make([]models.Enrollment, 0, len(items))
	for _, e := range items {
		if matchesQuery(query, e.StudentPRN, e.SubjectName, e.SubjectCode) {
			out = append(out, e)
		}
	}
	return out
}

// FilterAdminUsers applies the search filter to the admin-user list.
func FilterAdminUsers(items []models.AdminUser, query string) []models.AdminUser {
	out := make([]models.AdminUser, 0, len(items))
	for _, a := range items {
		if matchesQuery(query, a.Username) {
			out = append(out, a)
		}
	}
	return out
}
