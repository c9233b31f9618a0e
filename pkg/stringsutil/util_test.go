package stringsutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHumanize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"camel case", "PatientBilling", "patient billing"},
		{"snake case", "patient_billing", "patient billing"},
		{"kebab case", "patient-billing", "patient billing"},
		{"mixed", "patientBilling_v2", "patient billing v2"},
		{"already words", "patient billing", "patient billing"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Humanize(tt.input))
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "PatientBilling", "patientbilling"},
		{"spaces and symbols", "Billing ↔ Invoicing", "billing-invoicing"},
		{"leading and trailing", "--billing--", "billing"},
		{"digits kept", "flow v2", "flow-v2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}
