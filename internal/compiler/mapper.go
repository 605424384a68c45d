// Package compiler turns collection definitions into SQL DDL and a typed
// column model. Compilation is pure: the same collection always yields the
// same DDL text and an equivalent model, and no shared state is touched, so
// independent callers may compile concurrently without coordination.
package compiler

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/recordkit/schemac/internal/dialect"
	"github.com/recordkit/schemac/internal/errors"
	"github.com/recordkit/schemac/internal/schema"
)

// ColumnType is the physical storage type a logical field type maps to.
type ColumnType string

const (
	ColumnTypeText    ColumnType = "text"
	ColumnTypeInteger ColumnType = "integer"
)

// TypeMapper maps logical field types to physical storage types and renders
// default values as SQL literals under the given dialect rules.
type TypeMapper struct {
	rules dialect.Rules
}

// NewTypeMapper creates a type mapper bound to one dialect.
func NewTypeMapper(rules dialect.Rules) TypeMapper {
	return TypeMapper{rules: rules}
}

// PhysicalType maps a logical field type to its storage type. Dates are
// stored as ISO-8601 text and json as serialized text; numbers and booleans
// share the integer class (booleans as 0/1).
func (m TypeMapper) PhysicalType(t schema.FieldType) (ColumnType, error) {
	switch t {
	case schema.FieldTypeText, schema.FieldTypeDate, schema.FieldTypeJSON:
		return ColumnTypeText, nil
	case schema.FieldTypeNumber, schema.FieldTypeBoolean:
		return ColumnTypeInteger, nil
	default:
		return "", errors.Newf(errors.ErrTypeSchema, "unknown field type %q", t)
	}
}

// DefaultLiteral renders a default value as a SQL literal for the given
// field type. Errors carry no field context; callers annotate them with the
// field and collection names.
func (m TypeMapper) DefaultLiteral(t schema.FieldType, value interface{}) (string, error) {
	switch t {
	case schema.FieldTypeBoolean:
		b, ok := value.(bool)
		if !ok {
			return "", errors.Newf(errors.ErrTypeInvalidDefault, "boolean default must be a bool, got %T", value)
		}

		if b {
			return "TRUE", nil
		}

		return "FALSE", nil

	case schema.FieldTypeNumber:
		return numericLiteral(value)

	case schema.FieldTypeText:
		s, ok := value.(string)
		if !ok {
			return "", errors.Newf(errors.ErrTypeInvalidDefault, "text default must be a string, got %T", value)
		}

		return m.rules.QuoteLiteral(s), nil

	case schema.FieldTypeDate:
		s, ok := value.(string)
		if !ok {
			return "", errors.Newf(errors.ErrTypeInvalidDefault, "date default must be a string, got %T", value)
		}

		if s == schema.DateNowSentinel {
			return m.rules.CurrentTimestamp, nil
		}

		return m.rules.QuoteLiteral(s), nil

	case schema.FieldTypeJSON:
		data, err := json.Marshal(value)
		if err != nil {
			return "", errors.Wrap(err, errors.ErrTypeSerialization, "default value is not JSON-serializable")
		}

		return m.rules.QuoteLiteral(string(data)), nil

	default:
		return "", errors.Newf(errors.ErrTypeSchema, "unknown field type %q", t)
	}
}

// numericLiteral renders a numeric default in base-10 without quoting or
// exponent notation.
func numericLiteral(value interface{}) (string, error) {
	switch v := value.(type) {
	case int:
		return strconv.FormatInt(int64(v), 10), nil
	case int8:
		return strconv.FormatInt(int64(v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		return floatLiteral(float64(v))
	case float64:
		return floatLiteral(v)
	default:
		return "", errors.Newf(errors.ErrTypeInvalidDefault, "number default must be numeric, got %T", value)
	}
}

func floatLiteral(v float64) (string, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", errors.Newf(errors.ErrTypeInvalidDefault, "number default must be finite, got %v", v)
	}

	return strconv.FormatFloat(v, 'f', -1, 64), nil
}
