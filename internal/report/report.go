// Package report walks a schema's catalog and writes the tab-separated
// column report.
package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/koustreak/ischematsv/internal/catalog"
	"github.com/koustreak/ischematsv/internal/logger"
	"github.com/koustreak/ischematsv/internal/schema"
)

// Header is the fixed first line of every report.
const Header = "Table\tColumn\tType\tSize\tNullable\tDefault\tPKEY\tFKEY"

// Catalog is the metadata source the reporter traverses. Satisfied by
// *catalog.Catalog; tests substitute a fake.
type Catalog interface {
	ListTables(ctx context.Context, schema string) ([]string, error)
	TableColumns(ctx context.Context, schema, table string) ([]catalog.Column, error)
	ColumnKeyUsage(ctx context.Context, schema, table, column string) ([]catalog.KeyUsage, error)
}

// Reporter streams one report row per (table, column) to a writer.
type Reporter struct {
	cat Catalog
	log *logger.Logger
}

// New creates a Reporter over the given catalog.
func New(cat Catalog, log *logger.Logger) *Reporter {
	if log == nil {
		log = logger.New(nil)
	}
	return &Reporter{cat: cat, log: log}
}

// Run writes the header and then every column row of the schema's base
// tables, in catalog table order and column declaration order. Rows are
// written as they are produced; on a mid-run error the rows already
// written stay in w.
func (r *Reporter) Run(ctx context.Context, w io.Writer, schemaName string) error {
	if _, err := fmt.Fprintln(w, Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	tables, err := r.cat.ListTables(ctx, schemaName)
	if err != nil {
		return err
	}
	r.log.Debugf("schema %s: %d base table(s)", schemaName, len(tables))

	for _, table := range tables {
		if err := r.reportTable(ctx, w, schemaName, table); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reporter) reportTable(ctx context.Context, w io.Writer, schemaName, table string) error {
	columns, err := r.cat.TableColumns(ctx, schemaName, table)
	if err != nil {
		return err
	}
	r.log.Debugf("table %s: %d column(s)", table, len(columns))

	for _, col := range columns {
		def := schema.NewColumnDef(table, col.Name, col.DeclaredType, col.Nullable, col.Default)

		usages, err := r.cat.ColumnKeyUsage(ctx, schemaName, table, col.Name)
		if err != nil {
			return err
		}
		for _, u := range usages {
			def.ApplyConstraint(deref(u.ConstraintType), deref(u.RefTable), deref(u.RefColumn))
		}

		if _, err := fmt.Fprintln(w, strings.Join(def.Fields(), "\t")); err != nil {
			return fmt.Errorf("write row for %s.%s: %w", table, col.Name, err)
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
