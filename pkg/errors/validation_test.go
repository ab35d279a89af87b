package errors

import (
	"strings"
	"testing"
)

func TestValidateModelID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid neuron", "iaf_psc_alpha", false},
		{"valid recorder", "multimeter", false},
		{"valid dotted", "hh_psc_alpha.v2", false},
		{"valid dash", "poisson-generator", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 129), true},
		{"leading digit", "1neuron", true},
		{"whitespace", "iaf neuron", true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"slash", "models/iaf", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateModelID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateModelID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidModel) {
				t.Errorf("ValidateModelID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidModel)
			}
		})
	}
}

func TestValidateParamID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"threshold", "V_th", false},
		{"hidden", "_internal", false},
		{"weight", "weight", false},

		{"empty", "", true},
		{"too long", strings.Repeat("p", 65), true},
		{"newline", "V_\nth", true},
		{"leading digit", "0x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateParamID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateParamID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSize(t *testing.T) {
	for _, n := range []int{1, 10, 100000} {
		if err := ValidateSize(n); err != nil {
			t.Errorf("ValidateSize(%d) = %v, want nil", n, err)
		}
	}
	for _, n := range []int{0, -1} {
		if err := ValidateSize(n); !Is(err, ErrCodeInvalidInput) {
			t.Errorf("ValidateSize(%d) = %v, want INVALID_INPUT", n, err)
		}
	}
}
