// Package testutil provides builders for test collections.
package testutil

import (
	"github.com/recordkit/schemac/internal/schema"
)

// FieldOption is a functional option for configuring a test field.
type FieldOption func(*schema.Field)

// Optional marks the field as nullable.
func Optional() FieldOption {
	return func(f *schema.Field) {
		f.Optional = true
	}
}

// Unique adds a uniqueness constraint to the field.
func Unique() FieldOption {
	return func(f *schema.Field) {
		f.Unique = true
	}
}

// Default sets the field's default value.
func Default(value interface{}) FieldOption {
	return func(f *schema.Field) {
		f.Default = value
	}
}

// CollectionOption is a functional option for configuring a test collection.
type CollectionOption func(*schema.Collection)

// WithField appends a field. Fields are required by default, matching the
// authoring layer's contract.
func WithField(name string, fieldType schema.FieldType, opts ...FieldOption) CollectionOption {
	return func(c *schema.Collection) {
		f := schema.Field{Name: name, Type: fieldType}
		for _, opt := range opts {
			opt(&f)
		}

		c.Fields = append(c.Fields, f)
	}
}

// NewCollection builds a collection for tests.
func NewCollection(name string, opts ...CollectionOption) schema.Collection {
	c := schema.Collection{Name: name}
	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// PostsCollection returns the canonical posts example used across tests.
func PostsCollection() schema.Collection {
	return NewCollection("posts",
		WithField("title", schema.FieldTypeText),
		WithField("views", schema.FieldTypeNumber, Default(0)),
		WithField("published", schema.FieldTypeBoolean, Optional()),
		WithField("createdAt", schema.FieldTypeDate, Default(schema.DateNowSentinel)),
	)
}
