package sales

import (
	"fmt"

	"hermannm.dev/wrap"
)

// Sentinel selector value meaning "no constraint on this field".
const AllValues = "All"

// A user's choice of dashboard filters: one selection per categorical field (absent or "All"
// selections constrain nothing), plus an inclusive deal year range.
//
// All selections compose conjunctively, so applying them in any order yields the same rows.
type FilterSelection struct {
	Categories []CategorySelection `json:"categories"`
	MinYear    int                 `json:"minYear"`
	MaxYear    int                 `json:"maxYear"`
}

type CategorySelection struct {
	Field CategoryField `json:"field"`
	Value string        `json:"value"`
}

func (filter FilterSelection) Validate() error {
	var errs []error

	for i, selection := range filter.Categories {
		if !selection.Field.IsValid() {
			errs = append(errs, fmt.Errorf("category selection %d has invalid field", i))
		}
	}

	if filter.MinYear > filter.MaxYear {
		errs = append(errs, fmt.Errorf(
			"year range minimum %d exceeds maximum %d", filter.MinYear, filter.MaxYear,
		))
	}

	if len(errs) != 0 {
		return wrap.Errors("invalid filter selection", errs...)
	}
	return nil
}

// Returns a new table with the records matching every selection in the filter. The input table is
// never modified, and an empty result is valid.
//
// Category values are matched by exact, case-sensitive string equality, with no whitespace or
// case normalization. A selection that differs from the data only in casing therefore matches
// nothing.
func (filter FilterSelection) Apply(table Table) Table {
	filtered := Table{
		Records:        make([]Record, 0, len(table.Records)),
		HasCustomerAge: table.HasCustomerAge,
	}

	for _, record := range table.Records {
		if filter.matches(record) {
			filtered.Records = append(filtered.Records, record)
		}
	}

	return filtered
}

func (filter FilterSelection) matches(record Record) bool {
	for _, selection := range filter.Categories {
		if selection.Value == AllValues {
			continue
		}
		if record.CategoryValue(selection.Field) != selection.Value {
			return false
		}
	}

	return record.Year >= filter.MinYear && record.Year <= filter.MaxYear
}
