package services

import (
	"testing"

	"github.com/classlens/admin-panel/internal/app/models"
)

func TestFilterStudentsBlankQueryMatchesAll(t *testing.T) {
	students := []models.Student{
		{Name: "Alice"},
		{Name: "Bob"},
	}

	got := FilterStudents(students, Filter{Query: "   "})
	if len(got) != 2 {
		t.Fatalf("expected all students for blank query, got %d", len(got))
	}
}

func TestFilterStudentsQueryIsCaseInsensitiveSubstring(t *testing.T) {
	students := []models.Student{
		{Name: "Alice Johnson", Email: "alice@example.com", PRN: "2021001"},
		{Name: "Bob Smith", Email: "bob@example.com", PRN: "2021002"},
	}

	got := FilterStudents(students, Filter{Query: "ALICE"})
	if len(got) != 1 || got[0].Name != "Alice Johnson" {
		t.Fatalf("expected Alice by name, got %v", got)
	}

	got = FilterStudents(students, Filter{Query: "2021002"})
	if len(got) != 1 || got[0].Name != "Bob Smith" {
		t.Fatalf("expected Bob by PRN, got %v", got)
	}
}

func TestFilterStudentsYearExact(t *testing.T) {
	students := []models.Student{
		{Name: "Alice", Year: "2"},
		{Name: "Bob", Year: "12"},
	}

	got := FilterStudents(students, Filter{Year: "2"})
	if len(got) != 1 || got[0].Name != "Alice" {
		t.Fatalf("year filter must be exact, got %v", got)
	}
}

func TestMatchesDepartmentForms(t *testing.T) {
	cases := []struct {
		name       string
		filter     string
		department string
		deptName   string
		want       bool
	}{
		{"blank matches all", "", "anything", "", true},
		{"exact raw id", "3", "3", "Computer Science", true},
		{"name substring", "computer", "3", "Computer Science", true},
		{"raw equality ci", "cs", "CS", "", true},
		{"no overlap", "5", "3", "Computer Science", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MatchesDepartment(tc.filter, tc.department, tc.deptName); got != tc.want {
				t.Fatalf("MatchesDepartment(%q, %q, %q) = %v, want %v", tc.filter, tc.department, tc.deptName, got, tc.want)
			}
		})
	}
}

func TestFilterMappingsSearchesSubjects(t *testing.T) {
	mappings := []models.SubjectMapping{
		{DepartmentName: "Computer Science", Subjects: []models.SubjectDetail{{Code: "CS201", Name: "Algorithms"}}},
		{DepartmentName: "Mechanical", Subjects: []models.SubjectDetail{{Code: "ME101", Name: "Statics"}}},
	}

	got := FilterMappings(mappings, "algo")
	if len(got) != 1 || got[0].DepartmentName != "Computer Science" {
		t.Fatalf("expected match on subject name, got %v", got)
	}

	got = FilterMappings(mappings, "me101")
	if len(got) != 1 || got[0].DepartmentName != "Mechanical" {
		t.Fatalf("expected match on subject code, got %v", got)
	}
}

func TestFilterEnrollmentsAndAdminUsers(t *testing.T) {
	enrollments := []models.Enrollment{
		{StudentPRN: "2021001", SubjectName: "Algorithms", SubjectCode: "CS201"},
		{StudentPRN: "2021002", SubjectName: "Statics", SubjectCode: "ME101"},
	}
	if got := FilterEnrollments(enrollments, "cs2"); len(got) != 1 {
		t.Fatalf("expected one enrollment for code query, got %d", len(got))
	}

	admins := []models.AdminUser{{Username: "root"}, {Username: "aide"}}
	if got := FilterAdminUsers(admins, "ROO"); len(got) != 1 || got[0].Username != "root" {
		t.Fatalf("expected root, got %v", got)
	}
}
