package compiler

import (
	"strings"

	"github.com/recordkit/schemac/internal/dialect"
	"github.com/recordkit/schemac/internal/errors"
	"github.com/recordkit/schemac/internal/schema"
)

// GenerateCreateTable compiles a collection to a single CREATE TABLE
// statement. The implicit id column is emitted first, then every field in
// declared order. Modifiers keep a fixed order: NOT NULL, UNIQUE, DEFAULT.
// No destructive statement is ever part of the output; drop-before-create
// sequencing belongs to the caller that applies the schema.
func GenerateCreateTable(rules dialect.Rules, col schema.Collection) (string, error) {
	if err := col.Validate(); err != nil {
		return "", err
	}

	tableName, err := rules.QuoteIdentifier(col.Name)
	if err != nil {
		return "", err
	}

	mapper := NewTypeMapper(rules)

	clauses := make([]string, 0, len(col.Fields)+1)
	clauses = append(clauses, idColumnClause(rules))

	for _, f := range col.Fields {
		clause, err := fieldClause(rules, mapper, f)
		if err != nil {
			return "", annotateFieldError(err, col.Name, f.Name)
		}

		clauses = append(clauses, clause)
	}

	return "CREATE TABLE " + tableName + " (" + strings.Join(clauses, ", ") + ")", nil
}

func idColumnClause(rules dialect.Rules) string {
	// IDFieldName contains no quote characters, so escaping cannot fail.
	name, _ := rules.QuoteIdentifier(schema.IDFieldName)

	return name + " " + string(ColumnTypeText) + " PRIMARY KEY"
}

func fieldClause(rules dialect.Rules, mapper TypeMapper, f schema.Field) (string, error) {
	name, err := rules.QuoteIdentifier(f.Name)
	if err != nil {
		return "", err
	}

	physical, err := mapper.PhysicalType(f.Type)
	if err != nil {
		return "", err
	}

	clause := name + " " + string(physical)

	if !f.Optional {
		clause += " NOT NULL"
	}

	if f.Unique {
		clause += " UNIQUE"
	}

	if f.HasDefault() {
		literal, err := mapper.DefaultLiteral(f.Type, f.Default)
		if err != nil {
			return "", err
		}

		clause += " DEFAULT " + literal
	}

	return clause, nil
}

// annotateFieldError attaches the collection and field names to a mapper
// error so the caller knows which column failed compilation.
func annotateFieldError(err error, collection, field string) error {
	if errors.IsType(err, errors.ErrTypeSerialization) {
		return errors.NewSerializationError(collection, field, err)
	}

	return errors.Wrapf(
		err,
		errors.GetType(err),
		"field %q of collection %q failed to compile",
		field, collection,
	)
}
