package dataprocessing

import (
	"log/slog"

	"campaignclean/pkg/contracts/domain"
)

// Unifier concatenates fragments onto a canonical column set
type Unifier struct {
	logger *slog.Logger
	schema []string
}

// NewUnifier creates a unifier targeting the campaign schema
func NewUnifier(logger *slog.Logger) *Unifier {
	return NewUnifierWithSchema(logger, domain.CampaignSchema())
}

// NewUnifierWithSchema creates a unifier targeting an explicit column set
func NewUnifierWithSchema(logger *slog.Logger, schema []string) *Unifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Unifier{
		logger: logger.With(slog.String("component", "unifier")),
		schema: schema,
	}
}

// Unify appends the rows of every fragment, in order, into one table whose
// header is the canonical schema. Columns are matched by name: a column a
// fragment lacks is filled with the missing value, a column outside the
// schema is dropped. Cells are copied so the result shares no row storage
// with the fragments.
func (u *Unifier) Unify(fragments []Fragment) *Table {
	total := 0
	for _, f := range fragments {
		total += f.Table.Len()
	}

	unified := NewTable(u.schema)
	unified.Rows = make([][]string, 0, total)

	for _, fragment := range fragments {
		mapping := u.alignColumns(fragment)
		for _, row := range fragment.Table.Rows {
			out := make([]string, len(mapping))
			for i, src := range mapping {
				out[i] = cell(row, src)
			}
			unified.Rows = append(unified.Rows, out)
		}
	}

	u.logger.Info("Fragments unified",
		slog.Int("fragments", len(fragments)),
		slog.Int("rows", unified.Len()))

	return unified
}

// alignColumns maps each schema column to its position in the fragment, or -1
func (u *Unifier) alignColumns(fragment Fragment) []int {
	positions := make(map[string]int, len(fragment.Table.Header))
	for i, name := range fragment.Table.Header {
		if _, seen := positions[name]; !seen {
			positions[name] = i
		}
	}

	mapping := make([]int, len(u.schema))
	matched := make(map[string]bool, len(u.schema))
	for i, name := range u.schema {
		pos, ok := positions[name]
		if !ok {
			pos = -1
			u.logger.Warn("Fragment is missing column, filling with empty values",
				slog.String("file", fragment.Source),
				slog.String("column", name))
		}
		mapping[i] = pos
		matched[name] = true
	}

	for _, name := range fragment.Table.Header {
		if !matched[name] {
			u.logger.Warn("Fragment has unexpected column, ignoring it",
				slog.String("file", fragment.Source),
				slog.String("column", name))
		}
	}

	return mapping
}
