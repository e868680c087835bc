package services

import (
	"bytes"
	"errors"
	"testing"

	"github.com/classlens/admin-panel/internal/classlens"
	"github.com/classlens/admin-panel/internal/pkg/apperrors"
)

func TestValidateUploadName(t *testing.T) {
	for _, name := range []string{"students.csv", "data.XLSX", "old.xls"} {
		if err := ValidateUploadName(name); err != nil {
			t.Fatalf("expected %q to be accepted: %v", name, err)
		}
	}

	err := ValidateUploadName("notes.txt")
	if !errors.Is(err, apperrors.ErrUnsupportedFileType) {
		t.Fatalf("expected unsupported file type error, got %v", err)
	}
}

func TestTemplateForUnknownResource(t *testing.T) {
	if _, err := TemplateFor("faculties"); !errors.Is(err, apperrors.ErrUnknownResourceType) {
		t.Fatalf("expected unknown resource error, got %v", err)
	}
}

func TestCSVTemplateContents(t *testing.T) {
	name, content, err := CSVTemplate(classlens.ResourceSubjects)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "subjects_template.csv" {
		t.Fatalf("unexpected filename %q", name)
	}
	want := []byte("code,name\nCS101,Data Structures\n")
	if !bytes.Equal(content, want) {
		t.Fatalf("unexpected csv:\n%s", content)
	}
}

func TestBulkTypesCoverEveryTemplate(t *testing.T) {
	types := BulkTypes()
	if len(types) != len(bulkTemplates) {
		t.Fatalf("BulkTypes lists %d resources, templates map has %d", len(types), len(bulkTemplates))
	}
	for _, resource := range types {
		if _, err := TemplateFor(resource); err != nil {
			t.Fatalf("no template for listed type %q", resource)
		}
	}
}
