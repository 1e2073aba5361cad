package importer

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/cosmiccatalog/cosmic-catalog/internal/errors"
	"github.com/cosmiccatalog/cosmic-catalog/internal/observation"
)

//go:embed data/*.json
var bundled embed.FS

// Bundled data sets.
const (
	SampleSource    = "data/jwst_sample.json"
	RealisticSource = "data/realistic_jwst.json"
)

// Format is an import file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.Newf("unsupported import file extension %q", filepath.Ext(path)).
			Component("importer").
			Category(errors.CategoryValidation).
			Context("path", path).
			Build()
	}
}

// Loader reads observation records from files.
type Loader struct {
	// ValidateSchema checks every document against the import schema
	// before decoding records.
	ValidateSchema bool
}

// LoadFile reads and parses the file at path.
func (l *Loader) LoadFile(path string) ([]*observation.Observation, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(fmt.Errorf("read import file: %w", err)).
			Component("importer").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}
	return l.Parse(path, format, data)
}

// LoadBundled parses one of the data sets compiled into the binary.
func (l *Loader) LoadBundled(source string) ([]*observation.Observation, error) {
	data, err := bundled.ReadFile(source)
	if err != nil {
		return nil, errors.New(fmt.Errorf("read bundled data: %w", err)).
			Component("importer").
			Category(errors.CategoryFileIO).
			Context("source", source).
			Build()
	}
	return l.Parse(source, FormatJSON, data)
}

// Parse decodes data as a list of records. JSON and YAML documents may be
// a top-level list or a map with an "observations" list; TOML documents
// use an [[observations]] array of tables.
func (l *Loader) Parse(source string, format Format, data []byte) ([]*observation.Observation, error) {
	doc, err := decodeDocument(format, data)
	if err != nil {
		return nil, parseError(source, format, err)
	}
	doc = unwrapObservations(doc)

	// Round trip through JSON so every format is validated and decoded the
	// same way.
	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil, parseError(source, format, err)
	}

	if l.ValidateSchema {
		var generic any
		if err := json.Unmarshal(normalized, &generic); err != nil {
			return nil, parseError(source, format, err)
		}
		if err := validateDocument(generic); err != nil {
			return nil, errors.New(fmt.Errorf("%s does not match the observation schema: %w", source, err)).
				Component("importer").
				Category(errors.CategoryValidation).
				Context("source", source).
				Build()
		}
	}

	var records []Record
	if err := json.Unmarshal(normalized, &records); err != nil {
		return nil, parseError(source, format, err)
	}

	observations := make([]*observation.Observation, 0, len(records))
	for i := range records {
		o, err := records[i].Observation()
		if err != nil {
			return nil, fmt.Errorf("%s record %d: %w", source, i+1, err)
		}
		observations = append(observations, o)
	}
	return observations, nil
}

func decodeDocument(format Format, data []byte) (any, error) {
	var doc any
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&doc); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	if doc == nil {
		return []any{}, nil
	}
	return doc, nil
}

// unwrapObservations returns the "observations" list of a map document.
func unwrapObservations(doc any) any {
	if m, ok := doc.(map[string]any); ok {
		if list, ok := m["observations"]; ok {
			return list
		}
	}
	return doc
}

func parseError(source string, format Format, err error) error {
	return errors.New(fmt.Errorf("parse %s: %w", source, err)).
		Component("importer").
		Category(errors.CategoryFileParsing).
		Context("source", source).
		Context("format", string(format)).
		Build()
}
