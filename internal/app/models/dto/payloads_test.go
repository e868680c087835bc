package dto

import "testing"

func TestStudentPayloadOmitsBlankDepartment(t *testing.T) {
	payload := StudentPayload("Alice", "alice@example.com", "2021001", "2", "")
	if _, ok := payload["department"]; ok {
		t.Fatal("blank department should be omitted")
	}
}

func TestStudentPayloadCoercesNumericDepartment(t *testing.T) {
	payload := StudentPayload("Alice", "alice@example.com", "2021001", "2", "3")
	if got, ok := payload["department"].(int64); !ok || got != 3 {
		t.Fatalf("expected department 3 as int64, got %v", payload["department"])
	}

	payload = StudentPayload("Alice", "alice@example.com", "2021001", "2", "Computer Science")
	if got, ok := payload["department"].(string); !ok || got != "Computer Science" {
		t.Fatalf("expected department name passed through, got %v", payload["department"])
	}
}

func TestMappingPayloadSubjectIDsStayStrings(t *testing.T) {
	payload := MappingPayload("2", "3", "5", []string{"7", "9"})
	ids, ok := payload["subject_ids"].([]string)
	if !ok || len(ids) != 2 || ids[0] != "7" {
		t.Fatalf("expected string subject ids, got %v", payload["subject_ids"])
	}

	payload = MappingPayload("2", "3", "5", nil)
	if ids, ok := payload["subject_ids"].([]string); !ok || ids == nil {
		t.Fatalf("expected empty list, not nil, got %v", payload["subject_ids"])
	}
}

func TestAdminUserPayloadPasswordRule(t *testing.T) {
	payload := AdminUserPayload("root", "", true, true)
	if _, ok := payload["password"]; ok {
		t.Fatal("blank password on update should be omitted")
	}

	payload = AdminUserPayload("root", "secret", true, true)
	if payload["password"] != "secret" {
		t.Fatal("set password on update should be sent")
	}

	payload = AdminUserPayload("root", "secret", true, false)
	if payload["password"] != "secret" {
		t.Fatal("password on create should be sent")
	}
}

func TestEnrollmentPayloadCoercion(t *testing.T) {
	payload := EnrollmentPayload("2021001", "9")
	if got, ok := payload["student_prn"].(int64); !ok || got != 2021001 {
		t.Fatalf("expected numeric prn coerced, got %v", payload["student_prn"])
	}
	if got, ok := payload["subject"].(int64); !ok || got != 9 {
		t.Fatalf("expected numeric subject coerced, got %v", payload["subject"])
	}

	payload = EnrollmentPayload("PRN-17", "9")
	if got, ok := payload["student_prn"].(string); !ok || got != "PRN-17" {
		t.Fatalf("expected non-numeric prn passed through, got %v", payload["student_prn"])
	}
}
