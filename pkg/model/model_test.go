package model

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/nestgraph/pkg/errors"
)

func TestModelPredicates(t *testing.T) {
	tests := []struct {
		name       string
		model      Model
		recorder   bool
		multimeter bool
	}{
		{"neuron", Model{ID: "iaf_psc_alpha", ElementType: ElementNeuron}, false, false},
		{"multimeter", Model{ID: "multimeter", ElementType: ElementRecorder}, true, true},
		{"derived multimeter", Model{ID: "my_meter", ElementType: ElementRecorder, Existing: Multimeter}, true, true},
		{"voltmeter", Model{ID: "voltmeter", ElementType: ElementRecorder}, true, false},
		{"mislabelled", Model{ID: "multimeter", ElementType: ElementNeuron}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.model.IsRecorder(); got != tt.recorder {
				t.Errorf("IsRecorder() = %v, want %v", got, tt.recorder)
			}
			if got := tt.model.IsMultimeter(); got != tt.multimeter {
				t.Errorf("IsMultimeter() = %v, want %v", got, tt.multimeter)
			}
		})
	}
}

func TestModelValidate(t *testing.T) {
	tests := []struct {
		name    string
		model   Model
		wantErr bool
	}{
		{"valid", Model{ID: "iaf", ElementType: ElementNeuron, Params: []ParamDefault{{ID: "V_th"}}}, false},
		{"bad id", Model{ID: "", ElementType: ElementNeuron}, true},
		{"bad element type", Model{ID: "iaf", ElementType: "layer"}, true},
		{"bad param", Model{ID: "iaf", ElementType: ElementNeuron, Params: []ParamDefault{{ID: ""}}}, true},
		{"duplicate param", Model{ID: "iaf", ElementType: ElementNeuron, Params: []ParamDefault{{ID: "a"}, {ID: "a"}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.model.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidModel) {
				t.Errorf("Validate() code = %v, want INVALID_MODEL", errors.GetCode(err))
			}
		})
	}
}

func TestMapRegistry(t *testing.T) {
	reg, err := NewMapRegistry(
		&Model{ID: "iaf", ElementType: ElementNeuron, Recordables: []string{"V_m"}},
		&Model{ID: "multimeter", ElementType: ElementRecorder},
	)
	if err != nil {
		t.Fatalf("NewMapRegistry: %v", err)
	}

	m, err := reg.Lookup("iaf")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	m.Recordables[0] = "mutated"

	again, _ := reg.Lookup("iaf")
	if again.Recordables[0] != "V_m" {
		t.Error("Lookup should return a copy")
	}

	if _, err := reg.Lookup("missing"); !errors.Is(err, errors.ErrCodeUnknownModel) {
		t.Errorf("Lookup(missing) = %v, want UNKNOWN_MODEL", err)
	}

	if err := reg.Put(&Model{ID: "iaf", ElementType: ElementNeuron, Recordables: []string{"V_m", "g_ex"}}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	updated, _ := reg.Lookup("iaf")
	if len(updated.Recordables) != 2 {
		t.Errorf("Put should replace the model, got %v", updated.Recordables)
	}

	if got := len(reg.Filter(ElementRecorder)); got != 1 {
		t.Errorf("Filter(recorder) len = %d, want 1", got)
	}

	reg.Remove("iaf")
	if reg.Len() != 1 {
		t.Errorf("Len() = %d, want 1", reg.Len())
	}
}

func TestDefault(t *testing.T) {
	reg := Default()
	for _, id := range []string{"iaf_psc_alpha", "iaf_neuron", "multimeter", "poisson_generator", "static_synapse"} {
		if _, err := reg.Lookup(id); err != nil {
			t.Errorf("default catalogue missing %s: %v", id, err)
		}
	}

	mm, _ := reg.Lookup("multimeter")
	if !mm.IsMultimeter() {
		t.Error("multimeter should be multimeter-class")
	}

	iaf, _ := reg.Lookup("iaf_neuron")
	if p, ok := iaf.Param("V_th"); !ok || p.Value != -55 || !p.Visible() {
		t.Errorf("iaf_neuron V_th = %+v, %v", p, ok)
	}

	pg, _ := reg.Lookup("poisson_generator")
	if p, _ := pg.Param("stop"); p.Visible() {
		t.Error("poisson_generator stop should be hidden")
	}
}

func TestDecodeFormats(t *testing.T) {
	tests := []struct {
		format string
		input  string
	}{
		{FormatTOML, "[[model]]\nid = \"a\"\nelement_type = \"neuron\"\nrecordables = [\"V_m\"]\n"},
		{FormatYAML, "models:\n  - id: a\n    element_type: neuron\n    recordables: [V_m]\n"},
		{FormatJSON, `{"models":[{"id":"a","element_type":"neuron","recordables":["V_m"]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			reg, err := Decode(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			m, err := reg.Lookup("a")
			if err != nil {
				t.Fatalf("Lookup: %v", err)
			}
			if m.ElementType != ElementNeuron || len(m.Recordables) != 1 {
				t.Errorf("decoded model = %+v", m)
			}
		})
	}
}

func TestDecodeRejectsInvalid(t *testing.T) {
	_, err := Decode(strings.NewReader("models:\n  - id: a\n    element_type: layer\n"), FormatYAML)
	if !errors.Is(err, errors.ErrCodeInvalidModel) {
		t.Errorf("Decode() = %v, want INVALID_MODEL", err)
	}

	_, err = Decode(strings.NewReader("x"), "ini")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Decode(ini) = %v, want INVALID_FORMAT", err)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "models.yaml")
	if err := os.WriteFile(path, []byte("models:\n  - id: b\n    element_type: recorder\n"), 0644); err != nil {
		t.Fatal(err)
	}

	reg, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if reg.Len() != 1 {
		t.Errorf("Len() = %d, want 1", reg.Len())
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ReadFile(missing) = %v, want FILE_NOT_FOUND", err)
	}
	if _, err := ReadFile(filepath.Join(dir, "models.ini")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ReadFile(ini) = %v, want INVALID_FORMAT", err)
	}
}
