package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recordkit/schemac/internal/errors"
)

func TestFieldTypeValid(t *testing.T) {
	for _, ft := range FieldTypes() {
		assert.True(t, ft.Valid(), "declared type %q must be valid", ft)
	}

	assert.False(t, FieldType("blob").Valid())
	assert.False(t, FieldType("").Valid())
}

func TestCollectionField(t *testing.T) {
	col := Collection{
		Name: "posts",
		Fields: []Field{
			{Name: "title", Type: FieldTypeText},
			{Name: "views", Type: FieldTypeNumber},
		},
	}

	f, ok := col.Field("views")
	require.True(t, ok)
	assert.Equal(t, FieldTypeNumber, f.Type)

	_, ok = col.Field("missing")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		col     Collection
		errType errors.ErrorType
	}{
		{
			name: "valid collection",
			col: Collection{
				Name: "posts",
				Fields: []Field{
					{Name: "title", Type: FieldTypeText},
					{Name: "views", Type: FieldTypeNumber, Default: 0},
					{Name: "published", Type: FieldTypeBoolean, Optional: true},
					{Name: "createdAt", Type: FieldTypeDate, Default: DateNowSentinel},
				},
			},
		},
		{
			name:    "empty collection name",
			col:     Collection{Fields: []Field{{Name: "a", Type: FieldTypeText}}},
			errType: errors.ErrTypeSchema,
		},
		{
			name:    "empty field name",
			col:     Collection{Name: "posts", Fields: []Field{{Type: FieldTypeText}}},
			errType: errors.ErrTypeSchema,
		},
		{
			name:    "reserved id field",
			col:     Collection{Name: "posts", Fields: []Field{{Name: "id", Type: FieldTypeText}}},
			errType: errors.ErrTypeSchema,
		},
		{
			name: "duplicate field",
			col: Collection{Name: "posts", Fields: []Field{
				{Name: "title", Type: FieldTypeText},
				{Name: "title", Type: FieldTypeText},
			}},
			errType: errors.ErrTypeSchema,
		},
		{
			name:    "unknown type",
			col:     Collection{Name: "posts", Fields: []Field{{Name: "blob", Type: "blob"}}},
			errType: errors.ErrTypeSchema,
		},
		{
			name:    "text default must be string",
			col:     Collection{Name: "posts", Fields: []Field{{Name: "title", Type: FieldTypeText, Default: 42}}},
			errType: errors.ErrTypeInvalidDefault,
		},
		{
			name:    "number default must be numeric",
			col:     Collection{Name: "posts", Fields: []Field{{Name: "views", Type: FieldTypeNumber, Default: "many"}}},
			errType: errors.ErrTypeInvalidDefault,
		},
		{
			name:    "boolean default must be bool",
			col:     Collection{Name: "posts", Fields: []Field{{Name: "ok", Type: FieldTypeBoolean, Default: "yes"}}},
			errType: errors.ErrTypeInvalidDefault,
		},
		{
			name:    "date default must be string",
			col:     Collection{Name: "posts", Fields: []Field{{Name: "at", Type: FieldTypeDate, Default: true}}},
			errType: errors.ErrTypeInvalidDefault,
		},
		{
			name: "json default accepts any shape",
			col: Collection{Name: "posts", Fields: []Field{
				{Name: "meta", Type: FieldTypeJSON, Default: map[string]interface{}{"a": 1}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.col.Validate()
			if tt.errType == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.IsType(err, tt.errType), "expected %s, got %v", tt.errType, err)
		})
	}
}

func TestNumberDefaultShapes(t *testing.T) {
	// The YAML decoder hands back uint64/int64/float64 depending on the
	// literal; all must pass the shape check.
	for _, v := range []interface{}{int(1), int64(-2), uint64(3), float64(4.5)} {
		col := Collection{Name: "n", Fields: []Field{{Name: "v", Type: FieldTypeNumber, Default: v}}}
		assert.NoError(t, col.Validate(), "shape %T", v)
	}
}

func TestParse(t *testing.T) {
	doc := []byte(`
name: posts
fields:
  - name: title
    type: text
  - name: views
    type: number
    default: 0
  - name: published
    type: boolean
    optional: true
  - name: createdAt
    type: date
    default: now
`)

	col, err := Parse(doc)
	require.NoError(t, err)

	assert.Equal(t, "posts", col.Name)
	require.Len(t, col.Fields, 4)

	// Declared order must survive decoding.
	names := make([]string, 0, len(col.Fields))
	for _, f := range col.Fields {
		names = append(names, f.Name)
	}

	assert.Equal(t, []string{"title", "views", "published", "createdAt"}, names)
	assert.Equal(t, DateNowSentinel, col.Fields[3].Default)
}

func TestParseRejectsInvalid(t *testing.T) {
	_, err := Parse([]byte("name: posts\nfields: [{name: id, type: text}]"))

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeSchema))
}

func TestParseMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("{name: unterminated"))

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeSchema))
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("testdata/does-not-exist.yaml")

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeFileSystem))
}
