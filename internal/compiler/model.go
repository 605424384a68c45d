package compiler

import (
	"encoding/json"
	"time"

	"github.com/recordkit/schemac/internal/dialect"
	"github.com/recordkit/schemac/internal/errors"
	"github.com/recordkit/schemac/internal/schema"
)

// Mode selects how non-primitive column values are represented in the model.
// It is the single branch point between the two output variants.
type Mode int

const (
	// ModeNative is for in-process use: date and json columns carry codecs,
	// and date defaults are native time.Time values.
	ModeNative Mode = iota

	// ModeSerializable is for models that cross a JSON boundary: no codecs
	// are attached and dates stay plain ISO-8601 text, because a decoded
	// native date value cannot travel through JSON faithfully.
	ModeSerializable
)

// Column is one entry of the compiled table model.
type Column struct {
	Name       string     `json:"name"`
	Type       ColumnType `json:"type"`
	PrimaryKey bool       `json:"primaryKey,omitempty"`
	NotNull    bool       `json:"notNull,omitempty"`
	Unique     bool       `json:"unique,omitempty"`

	// DefaultSQL is the database-side default: a SQL literal, or the
	// current-timestamp function for runtime-computed date defaults. Empty
	// when the field has no default.
	DefaultSQL string `json:"defaultSQL,omitempty"`

	// Default is the application-level default. In native mode a date
	// default is a time.Time; a "now" date default stays database-side and
	// leaves this nil.
	Default interface{} `json:"default,omitempty"`

	// Codec is set in native mode for date and json columns, nil otherwise.
	Codec *Codec `json:"-"`
}

// Table is the compiled column model for one collection.
type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// Column returns the column with the given name, if present.
func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}

	return Column{}, false
}

// BuildTable compiles a collection to its typed column model. The implicit
// id column comes first, then one column per field in declared order. The
// input collection is only read; the returned model is an independent value.
func BuildTable(rules dialect.Rules, col schema.Collection, mode Mode) (Table, error) {
	if err := col.Validate(); err != nil {
		return Table{}, err
	}

	mapper := NewTypeMapper(rules)

	table := Table{
		Name:    col.Name,
		Columns: make([]Column, 0, len(col.Fields)+1),
	}

	table.Columns = append(table.Columns, Column{
		Name:       schema.IDFieldName,
		Type:       ColumnTypeText,
		PrimaryKey: true,
	})

	for _, f := range col.Fields {
		column, err := buildColumn(rules, mapper, f, mode)
		if err != nil {
			return Table{}, annotateFieldError(err, col.Name, f.Name)
		}

		table.Columns = append(table.Columns, column)
	}

	return table, nil
}

func buildColumn(rules dialect.Rules, mapper TypeMapper, f schema.Field, mode Mode) (Column, error) {
	physical, err := mapper.PhysicalType(f.Type)
	if err != nil {
		return Column{}, err
	}

	column := Column{
		Name:    f.Name,
		Type:    physical,
		NotNull: !f.Optional,
		Unique:  f.Unique,
	}

	if mode == ModeNative {
		switch f.Type {
		case schema.FieldTypeDate:
			column.Codec = DateCodec()
		case schema.FieldTypeJSON:
			column.Codec = JSONCodec()
		}
	}

	if !f.HasDefault() {
		return column, nil
	}

	column.DefaultSQL, err = mapper.DefaultLiteral(f.Type, f.Default)
	if err != nil {
		return Column{}, err
	}

	column.Default, err = applicationDefault(f, mode)
	if err != nil {
		return Column{}, err
	}

	return column, nil
}

// applicationDefault computes the default value the query layer applies on
// its side, mirroring the database-side literal.
func applicationDefault(f schema.Field, mode Mode) (interface{}, error) {
	switch f.Type {
	case schema.FieldTypeDate:
		s := f.Default.(string)
		if s == schema.DateNowSentinel {
			// Runtime-computed; stays a database-side function call.
			return nil, nil
		}

		if mode == ModeSerializable {
			return s, nil
		}

		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrTypeInvalidDefault, "date default %q is not ISO-8601", s)
		}

		return t, nil

	case schema.FieldTypeJSON:
		if mode == ModeSerializable {
			// Serialization already succeeded for the SQL literal.
			data, err := json.Marshal(f.Default)
			if err != nil {
				return nil, errors.Wrap(err, errors.ErrTypeSerialization, "default value is not JSON-serializable")
			}

			return string(data), nil
		}

		return f.Default, nil

	default:
		return f.Default, nil
	}
}
