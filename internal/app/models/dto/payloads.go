package dto

import (
	"strconv"
	"strings"
)

// Outgoing payloads are maps so optional fields can be omitted entirely
// rather than sent as empty values.

// coerceNumber converts a form value to an int64 when it parses as one and
// leaves it as the original string otherwise, matching the backend's
// tolerance for either.
func coerceNumber(value string) interface{} {
	trimmed := strings.TrimSpace(value)
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return n
	}
	return value
}

// StudentPayload builds the create/update body for a student. The department
// is included only when set and coerced to a numeric id when possible.
func StudentPayload(name, email, prn, year, department string) map[string]interface{} {
	payload := map[string]interface{}{
		"name":  name,
		"email": email,
		"prn":   prn,
		"year":  year,
	}
	if department != "" {
		payload["department"] = coerceNumber(department)
	}
	return payload
}

// TeacherPayload builds the create/update body for a teacher.
func TeacherPayload(name, email, phone, department string) map[string]interface{} {
	payload := map[string]interface{}{
		"name":  name,
		"email": email,
	}
	if phone != "" {
		payload["phone"] = phone
	}
	if department != "" {
		payload["department"] = coerceNumber(department)
	}
	return payload
}

// SubjectPayload builds the create/update body for a subject.
func SubjectPayload(code, name, description string) map[string]interface{} {
	payload := map[string]interface{}{
		"code": code,
		"name": name,
	}
	if description != "" {
		payload["description"] = description
	}
	return payload
}

// MappingPayload builds the create/update body for a subject-from-department
// mapping. Subject ids stay strings, the way the backend's serializer takes
// them from the multi-select.
func MappingPayload(department, year, semester string, subjectIDs []string) map[string]interface{} {
	if subjectIDs == nil {
		subjectIDs = []string{}
	}
	return map[string]interface{}{
		"department":  coerceNumber(department),
		"year":        coerceNumber(year),
		"semester":    coerceNumber(semester),
		"subject_ids": subjectIDs,
	}
}

// EnrollmentPayload builds the create/update body for a student enrollment.
func EnrollmentPayload(studentPRN, subject string) map[string]interface{} {
	return map[string]interface{}{
		"student_prn": coerceNumber(studentPRN),
		"subject":     coerceNumber(subject),
	}
}

// AdminUserPayload builds the create/update body for an admin user. On
// update a blank password is omitted so the stored one stays unchanged; on
// create the password is always sent.
func AdminUserPayload(username, password string, isActive, isUpdate bool) map[string]interface{} {
	payload := map[string]interface{}{
		"username":  username,
		"is_active": isActive,
	}
	if !isUpdate || password != "" {
		payload["password"] = password
	}
	return payload
}

// CredentialsPayload is the login / create-user body.
func CredentialsPayload(username, password string) map[string]interface{} {
	return map[string]interface{}{
		"username": username,
		"password": password,
	}
}
