// Package catalog runs the read-only information_schema queries the
// report is built from. All inputs are bound parameters; nothing is
// interpolated into SQL text.
package catalog

import (
	"context"
	"fmt"

	"github.com/koustreak/ischematsv/internal/database"
)

// Column is one raw information_schema.COLUMNS row, in catalog terms:
// the declared type is unparsed (e.g. "varchar(255)") and the default
// is nil when the catalog reports none.
type Column struct {
	Name         string
	Default      *string
	Nullable     string // "YES" / "NO" as reported by the catalog
	DeclaredType string
}

// KeyUsage is one constraint row for a column. RefTable and RefColumn
// are set only for foreign keys.
type KeyUsage struct {
	ConstraintType *string
	RefTable       *string
	RefColumn      *string
}

// Catalog queries a schema's metadata through a database.Reader.
type Catalog struct {
	db database.Reader
}

// New creates a Catalog backed by db.
func New(db database.Reader) *Catalog {
	return &Catalog{db: db}
}

// ListTables returns the names of the schema's base tables, in the
// order the catalog returns them. Views are excluded.
func (c *Catalog) ListTables(ctx context.Context, schema string) ([]string, error) {
	const q = `
		SELECT TABLE_NAME
		FROM information_schema.TABLES
		WHERE TABLE_SCHEMA = ?
		  AND TABLE_TYPE   = 'BASE TABLE'`

	rows, err := c.db.Query(ctx, q, schema)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// TableColumns returns a table's columns in declaration order.
func (c *Catalog) TableColumns(ctx context.Context, schema, table string) ([]Column, error) {
	const q = `
		SELECT
		  C.COLUMN_NAME
		, C.COLUMN_DEFAULT
		, C.IS_NULLABLE
		, C.COLUMN_TYPE
		FROM information_schema.COLUMNS C
		WHERE C.TABLE_SCHEMA = ?
		  AND C.TABLE_NAME   = ?
		ORDER BY C.ORDINAL_POSITION`

	rows, err := c.db.Query(ctx, q, schema, table)
	if err != nil {
		return nil, fmt.Errorf("list columns of %s.%s: %w", schema, table, err)
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		var col Column
		if err := rows.Scan(&col.Name, &col.Default, &col.Nullable, &col.DeclaredType); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		cols = append(cols, col)
	}
	return cols, rows.Err()
}

// ColumnKeyUsage returns the constraint rows a column participates in.
// A column may have zero, one, or several rows (e.g. both a primary key
// and a foreign key).
func (c *Catalog) ColumnKeyUsage(ctx context.Context, schema, table, column string) ([]KeyUsage, error) {
	const q = `
		SELECT T.CONSTRAINT_TYPE, K.REFERENCED_TABLE_NAME, K.REFERENCED_COLUMN_NAME
		FROM information_schema.KEY_COLUMN_USAGE K
		LEFT JOIN information_schema.TABLE_CONSTRAINTS T
		  ON K.CONSTRAINT_NAME = T.CONSTRAINT_NAME
		 AND K.TABLE_SCHEMA    = T.TABLE_SCHEMA
		 AND K.TABLE_NAME      = T.TABLE_NAME
		WHERE K.TABLE_SCHEMA = ?
		  AND K.TABLE_NAME   = ?
		  AND K.COLUMN_NAME  = ?`

	rows, err := c.db.Query(ctx, q, schema, table, column)
	if err != nil {
		return nil, fmt.Errorf("list key usage of %s.%s.%s: %w", schema, table, column, err)
	}
	defer rows.Close()

	var usages []KeyUsage
	for rows.Next() {
		var u KeyUsage
		if err := rows.Scan(&u.ConstraintType, &u.RefTable, &u.RefColumn); err != nil {
			return nil, fmt.Errorf("scan key usage: %w", err)
		}
		usages = append(usages, u)
	}
	return usages, rows.Err()
}
