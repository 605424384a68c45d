// Package schema defines the logical collection model the compiler consumes:
// named fields with semantic types, nullability, uniqueness, and defaults.
package schema

import (
	"github.com/recordkit/schemac/internal/errors"
)

// FieldType is the closed set of logical field types.
type FieldType string

const (
	FieldTypeText    FieldType = "text"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeDate    FieldType = "date"
	FieldTypeJSON    FieldType = "json"
)

// DateNowSentinel is the default value for date fields meaning "current
// timestamp at insert time". It compiles to a database-side function call,
// never to a timestamp frozen at schema-creation time.
const DateNowSentinel = "now"

// IDFieldName is the implicit primary key column present on every table. It
// is reserved and cannot be declared as a regular field.
const IDFieldName = "id"

// Valid reports whether t is one of the five declared field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeNumber, FieldTypeBoolean, FieldTypeDate, FieldTypeJSON:
		return true
	default:
		return false
	}
}

// FieldTypes returns all declared field types in a stable order.
func FieldTypes() []FieldType {
	return []FieldType{
		FieldTypeText,
		FieldTypeNumber,
		FieldTypeBoolean,
		FieldTypeDate,
		FieldTypeJSON,
	}
}

// Field describes one column of a collection.
type Field struct {
	Name     string    `yaml:"name"     json:"name"`
	Type     FieldType `yaml:"type"     json:"type"`
	Optional bool      `yaml:"optional" json:"optional"`
	Unique   bool      `yaml:"unique"   json:"unique"`

	// Default is the field's default value, nil when absent. Its accepted
	// shape depends on Type: string for text and date (date also accepts the
	// "now" sentinel), a numeric value for number, bool for boolean, and any
	// JSON-serializable value for json.
	Default interface{} `yaml:"default" json:"default,omitempty"`
}

// HasDefault reports whether the field declares a default value.
func (f Field) HasDefault() bool {
	return f.Default != nil
}

// Collection is one table's logical schema: a name plus an ordered list of
// field definitions, excluding the implicit id column.
type Collection struct {
	Name   string  `yaml:"name"   json:"name"`
	Fields []Field `yaml:"fields" json:"fields"`
}

// Field returns the field with the given name, if declared.
func (c Collection) Field(name string) (Field, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}

	return Field{}, false
}

// Validate checks the collection against the authoring contract: a non-empty
// name, known field types, no duplicate or reserved field names, and default
// values whose runtime shape matches their declared type. JSON defaults are
// shape-checked at compile time instead, where serialization actually runs.
func (c Collection) Validate() error {
	if c.Name == "" {
		return errors.New(errors.ErrTypeSchema, "collection name must not be empty")
	}

	seen := make(map[string]bool, len(c.Fields))

	for _, f := range c.Fields {
		if f.Name == "" {
			return errors.Newf(
				errors.ErrTypeSchema,
				"collection %q declares a field with an empty name",
				c.Name,
			)
		}

		if f.Name == IDFieldName {
			return errors.Newf(
				errors.ErrTypeSchema,
				"collection %q declares reserved field name %q",
				c.Name, IDFieldName,
			)
		}

		if seen[f.Name] {
			return errors.Newf(
				errors.ErrTypeSchema,
				"collection %q declares field %q more than once",
				c.Name, f.Name,
			)
		}

		seen[f.Name] = true

		if !f.Type.Valid() {
			return errors.Newf(
				errors.ErrTypeSchema,
				"field %q of collection %q has unknown type %q",
				f.Name, c.Name, f.Type,
			)
		}

		if err := checkDefaultShape(f); err != nil {
			return err
		}
	}

	return nil
}

// checkDefaultShape enforces the invariant that a default's runtime shape
// matches the field's declared type.
func checkDefaultShape(f Field) error {
	if !f.HasDefault() {
		return nil
	}

	switch f.Type {
	case FieldTypeText, FieldTypeDate:
		if _, ok := f.Default.(string); !ok {
			return errors.NewInvalidDefaultError(f.Name, f.Type, f.Default)
		}
	case FieldTypeNumber:
		if !isNumeric(f.Default) {
			return errors.NewInvalidDefaultError(f.Name, f.Type, f.Default)
		}
	case FieldTypeBoolean:
		if _, ok := f.Default.(bool); !ok {
			return errors.NewInvalidDefaultError(f.Name, f.Type, f.Default)
		}
	case FieldTypeJSON:
		// Any value is accepted here; serializability is verified by the
		// compiler when the literal is produced.
	}

	return nil
}

// isNumeric accepts the numeric shapes produced by Go literals and by the
// YAML and JSON decoders.
func isNumeric(v interface{}) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	default:
		return false
	}
}
