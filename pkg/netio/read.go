package netio

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/nestgraph/pkg/errors"
	"github.com/matzehuels/nestgraph/pkg/model"
	"github.com/matzehuels/nestgraph/pkg/network"
)

// Format is a description file format.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath maps a file extension to a Format. Paths without a known
// extension are JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ReadDescription decodes and validates a description from r.
// ReadDescription does not close r.
func ReadDescription(r io.Reader, format Format) (network.Description, error) {
	var desc network.Description
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&desc); err != nil {
			return desc, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&desc); err != nil && err != io.EOF {
			return desc, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
		}
	default:
		return desc, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
	}
	if err := Validate(&desc); err != nil {
		return desc, err
	}
	return desc, nil
}

// ImportDescription reads the description stored at path.
func ImportDescription(path string) (network.Description, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return network.Description{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return network.Description{}, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()
	return ReadDescription(f, FormatFromPath(path))
}

// ReadNetwork decodes a description from r and hydrates a new network with it.
func ReadNetwork(r io.Reader, format Format, reg model.Registry, opts ...network.Option) (*network.Network, error) {
	desc, err := ReadDescription(r, format)
	if err != nil {
		return nil, err
	}
	net := network.New(reg, opts...)
	if err := net.Update(desc); err != nil {
		return nil, err
	}
	return net, nil
}

// ImportNetwork hydrates a new network from the description stored at path.
func ImportNetwork(path string, reg model.Registry, opts ...network.Option) (*network.Network, error) {
	desc, err := ImportDescription(path)
	if err != nil {
		return nil, err
	}
	net := network.New(reg, opts...)
	if err := net.Update(desc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidReference, err, "%s", path)
	}
	return net, nil
}
