package model

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/nestgraph/pkg/errors"
)

// Catalogue file formats accepted by [Decode].
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

//go:embed defaults.toml
var defaultCatalogue []byte

type catalogue struct {
	Models []*Model `toml:"model" yaml:"models" json:"models"`
}

// Default returns a fresh registry holding the embedded default catalogue.
func Default() *MapRegistry {
	r, err := Decode(bytes.NewReader(defaultCatalogue), FormatTOML)
	if err != nil {
		panic(fmt.Sprintf("model: embedded catalogue: %v", err))
	}
	return r
}

// FormatFromPath maps a file extension to a catalogue format.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported catalogue extension: %q", filepath.Ext(path))
	}
}

// ReadFile loads a catalogue file into a new registry.
func ReadFile(path string) (*MapRegistry, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	r, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Decode reads a catalogue in the given format. Every model is validated;
// the first invalid model aborts the load.
func Decode(r io.Reader, format string) (*MapRegistry, error) {
	var cat catalogue
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&cat); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml catalogue")
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&cat); err != nil && err != io.EOF {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml catalogue")
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&cat); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json catalogue")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported catalogue format: %q", format)
	}
	return NewMapRegistry(cat.Models...)
}
