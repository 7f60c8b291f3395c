// Package schema shapes raw catalog rows into the per-column records
// the report prints.
package schema

import "regexp"

// columnTypePattern splits a declared type like "varchar(255)" or
// "decimal(10,2)" into its base type and the raw size suffix.
var columnTypePattern = regexp.MustCompile(`^(.+)\((.*)\)$`)

// ColumnDef is one fully shaped report row: a column's identity, parsed
// type, nullability, default, and key participation.
//
// Known limitation: a column in several PRIMARY KEY or FOREIGN KEY
// constraint rows (composite keys) keeps only the last row applied —
// there is no aggregation of multiple references per column.
type ColumnDef struct {
	TableName    string
	ColumnName   string
	ColumnType   string // base type, size suffix stripped
	ColumnSize   string // raw parenthesized content, e.g. "255" or "10,2"
	IsNullable   string // "YES" / "NO" as reported by the catalog
	DefaultValue string // empty when the catalog reports no default
	IsPrimaryKey string // "" or "YES"
	ForeignKey   string // "" or "<ref_table>.<ref_col>"
}

// NewColumnDef builds a ColumnDef from one raw catalog column row.
// A nil default collapses to the empty string; an explicit empty-string
// default is passed through unchanged (the two are indistinguishable in
// the output).
func NewColumnDef(tableName, columnName, declaredType, isNullable string, rawDefault *string) ColumnDef {
	def := ColumnDef{
		TableName:  tableName,
		ColumnName: columnName,
		IsNullable: isNullable,
	}
	if rawDefault != nil {
		def.DefaultValue = *rawDefault
	}
	def.setColumnType(declaredType)
	return def
}

func (d *ColumnDef) setColumnType(declaredType string) {
	if m := columnTypePattern.FindStringSubmatch(declaredType); m != nil {
		d.ColumnType = m[1]
		d.ColumnSize = m[2]
		return
	}
	d.ColumnType = declaredType
	d.ColumnSize = ""
}

// ApplyConstraint folds one constraint row into the key flags. Primary
// keys set the PKEY flag; foreign keys record the referenced table and
// column from the constraint row. Any other constraint type (UNIQUE,
// CHECK, ...) is ignored.
func (d *ColumnDef) ApplyConstraint(constraintType, refTable, refColumn string) {
	switch constraintType {
	case "PRIMARY KEY":
		d.IsPrimaryKey = "YES"
	case "FOREIGN KEY":
		d.ForeignKey = refTable + "." + refColumn
	}
}

// Fields returns the eight report fields in output order.
func (d *ColumnDef) Fields() []string {
	return []string{
		d.TableName,
		d.ColumnName,
		d.ColumnType,
		d.ColumnSize,
		d.IsNullable,
		d.DefaultValue,
		d.IsPrimaryKey,
		d.ForeignKey,
	}
}
