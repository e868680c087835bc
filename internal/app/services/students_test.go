package services

import (
	"testing"

	"github.com/classlens/admin-panel/internal/app/models"
)

func TestReconcileDepartment(t *testing.T) {
	departments := []models.Department{
		{ID: 3, Name: "Computer Science"},
		{ID: 5, Name: "Mechanical"},
	}

	cases := []struct {
		name  string
		value string
		want  string
	}{
		{"blank stays blank", "", ""},
		{"numeric id passes through", "5", "5"},
		{"name resolves to id", "Computer Science", "3"},
		{"unknown name passes through", "Astrology", "Astrology"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ReconcileDepartment(tc.value, departments); got != tc.want {
				t.Fatalf("ReconcileDepartment(%q) = %q, want %q", tc.value, got, tc.want)
			}
		})
	}
}
