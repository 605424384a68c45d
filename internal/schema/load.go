package schema

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/recordkit/schemac/internal/errors"
)

// Parse decodes a single collection definition from YAML (or JSON, which is
// a YAML subset) and validates it. Field order in the document is preserved.
func Parse(data []byte) (Collection, error) {
	var col Collection
	if err := yaml.Unmarshal(data, &col); err != nil {
		return Collection{}, errors.Wrap(err, errors.ErrTypeSchema, "failed to parse collection definition")
	}

	if err := col.Validate(); err != nil {
		return Collection{}, err
	}

	return col, nil
}

// LoadFile reads and parses one collection definition file.
func LoadFile(path string) (Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Collection{}, errors.Wrapf(err, errors.ErrTypeFileSystem, "failed to read schema file %s", path)
	}

	// Parse errors already carry a typed category; wrapping them again would
	// hide it from errors.IsType, so the path is only added to read failures.
	return Parse(data)
}
