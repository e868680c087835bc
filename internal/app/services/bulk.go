package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/classlens/admin-panel/internal/classlens"
	"github.com/classlens/admin-panel/internal/pkg/apperrors"
)

// TemplateSpec is the header row and one example row of a bulk-upload
// template. The backend dictates these columns; keep them in sync with its
// import serializers.
type TemplateSpec struct {
	Headers []string
	Example []string
}

var bulkTemplates = map[string]TemplateSpec{
	classlens.ResourceTeachers: {
		Headers: []string{"name", "email", "password", "department_name", "phone", "subject"},
		Example: []string{"John Doe", "john@example.com", "teacher123", "Computer Science", "9876543210", "CS101"},
	},
	classlens.ResourceStudents: {
		Headers: []string{"prn", "name", "email", "password", "year", "department_name", "phone"},
		Example: []string{"2021001", "Alice Johnson", "alice@example.com", "student123", "2", "Computer Science", "9876543210"},
	},
	classlens.ResourceSubjects: {
		Headers: []string{"code", "name"},
		Example: []string{"CS101", "Data Structures"},
	},
	classlens.ResourceMappings: {
		Headers: []string{"department_name", "year", "semester", "subject_codes"},
		Example: []string{"Computer Science", "2", "3", "CS201,CS202"},
	},
	classlens.ResourceEnrollments: {
		Headers: []string{"student_prn", "subject_code"},
		Example: []string{"2021001", "CS201"},
	},
}

// allowedUploadExtensions is the client-side extension allow-list. Content
// inspection is the backend's job.
var allowedUploadExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".xls":  true,
}

// BulkTypes lists the resources that support bulk upload.
func BulkTypes() []string {
	return []string{
		classlens.ResourceTeachers,
		classlens.ResourceStudents,
		classlens.ResourceSubjects,
		classlens.ResourceMappings,
		classlens.ResourceEnrollments,
	}
}

// TemplateFor returns the template spec for a resource.
func TemplateFor(resource string) (TemplateSpec, error) {
	spec, ok := bulkTemplates[resource]
	if !ok {
		return TemplateSpec{}, fmt.Errorf("%w: %s", apperrors.ErrUnknownResourceType, resource)
	}
	return spec, nil
}

// ValidateUploadName rejects files whose extension is not in the allow-list
// before any network call happens.
func ValidateUploadName(name string) error {
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedUploadExtensions[ext] {
		return fmt.Errorf("%w: please upload a CSV or Excel (.xlsx/.xls) file", apperrors.ErrUnsupportedFileType)
	}
	return nil
}

// CSVTemplate generates the CSV template for a resource in memory.
func CSVTemplate(resource string) (string, []byte, error) {
	spec, err := TemplateFor(resource)
	if err != nil {
		return "", nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(spec.Headers); err != nil {
		return "", nil, err
	}
	if err := writer.Write(spec.Example); err != nil {
		return "", nil, err
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", nil, err
	}

	return fmt.Sprintf("%s_template.csv", resource), buf.Bytes(), nil
}

// BulkService handles template downloads and bulk uploads.
type BulkService struct {
	api *classlens.Client
}

// NewBulkService creates a new bulk service instance.
func NewBulkService(api *classlens.Client) *BulkService {
	return &BulkService{api: api}
}

// ExcelTemplate fetches the server-generated Excel template, falling back to
// the client-generated CSV when the backend cannot serve one. The second
// return value reports whether the fallback was taken.
func (s *BulkService) ExcelTemplate(ctx context.Context, token, resource string) (*classlens.TemplateFile, bool, error) {
	if _, err := TemplateFor(resource); err != nil {
		return nil, false, err
	}

	file, err := s.api.DownloadTemplate(ctx, token, resource)
	if err == nil {
		return file, false, nil
	}

	name, content, csvErr := CSVTemplate(resource)
	if csvErr != nil {
		return nil, false, csvErr
	}
	return &classlens.TemplateFile{
		Filename:    name,
		ContentType: "text/csv; charset=utf-8",
		Content:     content,
	}, true, nil
}

// Upload validates the filename and forwards the file to the backend's
// bulk-import endpoint.
func (s *BulkService) Upload(ctx context.Context, token, resource, filename string, file io.Reader) (classlens.BulkResult, error) {
	if _, err := TemplateFor(resource); err != nil {
		return classlens.BulkResult{}, err
	}
	if err := ValidateUploadName(filename); err != nil {
		return classlens.BulkResult{}, err
	}
	return s.api.BulkUpload(ctx, token, resource, filename, file)
}
