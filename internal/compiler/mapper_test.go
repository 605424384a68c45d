package compiler

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recordkit/schemac/internal/dialect"
	"github.com/recordkit/schemac/internal/errors"
	"github.com/recordkit/schemac/internal/schema"
)

func TestPhysicalTypeTotalOverDeclaredTypes(t *testing.T) {
	mapper := NewTypeMapper(dialect.Standard())

	expected := map[schema.FieldType]ColumnType{
		schema.FieldTypeText:    ColumnTypeText,
		schema.FieldTypeDate:    ColumnTypeText,
		schema.FieldTypeJSON:    ColumnTypeText,
		schema.FieldTypeNumber:  ColumnTypeInteger,
		schema.FieldTypeBoolean: ColumnTypeInteger,
	}

	for _, ft := range schema.FieldTypes() {
		physical, err := mapper.PhysicalType(ft)
		require.NoError(t, err, "type %q", ft)
		assert.Equal(t, expected[ft], physical, "type %q", ft)
	}
}

func TestPhysicalTypeUnknown(t *testing.T) {
	mapper := NewTypeMapper(dialect.Standard())

	_, err := mapper.PhysicalType("blob")

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeSchema))
}

func TestDefaultLiteral(t *testing.T) {
	mapper := NewTypeMapper(dialect.Standard())

	tests := []struct {
		name      string
		fieldType schema.FieldType
		value     interface{}
		expected  string
	}{
		{name: "boolean true", fieldType: schema.FieldTypeBoolean, value: true, expected: "TRUE"},
		{name: "boolean false", fieldType: schema.FieldTypeBoolean, value: false, expected: "FALSE"},
		{name: "number int", fieldType: schema.FieldTypeNumber, value: 0, expected: "0"},
		{name: "number negative", fieldType: schema.FieldTypeNumber, value: -42, expected: "-42"},
		{name: "number uint64", fieldType: schema.FieldTypeNumber, value: uint64(7), expected: "7"},
		{name: "number float", fieldType: schema.FieldTypeNumber, value: 2.5, expected: "2.5"},
		{name: "number large float stays base-10", fieldType: schema.FieldTypeNumber, value: 1000000.0, expected: "1000000"},
		{name: "text", fieldType: schema.FieldTypeText, value: "draft", expected: "'draft'"},
		{name: "text with quote escaped", fieldType: schema.FieldTypeText, value: "it's", expected: "'it''s'"},
		{name: "date now sentinel", fieldType: schema.FieldTypeDate, value: "now", expected: "CURRENT_TIMESTAMP"},
		{name: "date literal", fieldType: schema.FieldTypeDate, value: "2024-01-02T03:04:05Z", expected: "'2024-01-02T03:04:05Z'"},
		{name: "json object", fieldType: schema.FieldTypeJSON, value: map[string]interface{}{"tags": []interface{}{"a"}}, expected: `'{"tags":["a"]}'`},
		{name: "json string quoted twice", fieldType: schema.FieldTypeJSON, value: "it's", expected: `'"it''s"'`},
		{name: "json null", fieldType: schema.FieldTypeJSON, value: json.RawMessage("null"), expected: "'null'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mapper.DefaultLiteral(tt.fieldType, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDefaultLiteralShapeMismatch(t *testing.T) {
	mapper := NewTypeMapper(dialect.Standard())

	tests := []struct {
		name      string
		fieldType schema.FieldType
		value     interface{}
	}{
		{name: "boolean from string", fieldType: schema.FieldTypeBoolean, value: "true"},
		{name: "number from string", fieldType: schema.FieldTypeNumber, value: "0"},
		{name: "number NaN", fieldType: schema.FieldTypeNumber, value: math.NaN()},
		{name: "number infinity", fieldType: schema.FieldTypeNumber, value: math.Inf(1)},
		{name: "text from int", fieldType: schema.FieldTypeText, value: 1},
		{name: "date from bool", fieldType: schema.FieldTypeDate, value: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mapper.DefaultLiteral(tt.fieldType, tt.value)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrTypeInvalidDefault))
		})
	}
}

func TestDefaultLiteralSerializationFailure(t *testing.T) {
	mapper := NewTypeMapper(dialect.Standard())

	cyclic := map[string]interface{}{}
	cyclic["self"] = cyclic

	_, err := mapper.DefaultLiteral(schema.FieldTypeJSON, cyclic)

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeSerialization))
}
