package sales

import (
	"slices"
	"time"
)

// Column names of the sales dataset schema.
const (
	ColumnState       = "State"
	ColumnMake        = "Make"
	ColumnModel       = "Model"
	ColumnBodyStyle   = "BodyStyle"
	ColumnDriveType   = "DriveType"
	ColumnTrim        = "Trim"
	ColumnDealDate    = "DealDate"
	ColumnPrice       = "Price"
	ColumnCustomerAge = "CustomerAge"

	ColumnYear       = "Year"
	ColumnMonth      = "Month"
	ColumnMonthName  = "MonthName"
	ColumnQuarter    = "Quarter"
	ColumnWeekOfYear = "WeekOfYear"
	ColumnYearMonth  = "YearMonth"
)

// RequiredColumns are the columns an uploaded CSV must contain for the loader to accept it.
var RequiredColumns = []string{
	ColumnState,
	ColumnMake,
	ColumnModel,
	ColumnBodyStyle,
	ColumnDriveType,
	ColumnTrim,
	ColumnDealDate,
	ColumnPrice,
}

// An in-memory table of sales records. Treated as immutable once loaded: filtering and
// aggregation always produce new tables or result sequences, never mutate an existing one.
type Table struct {
	Records []Record
	// True if the loaded dataset had a CustomerAge column. Checked by SalesDistribution to
	// dispatch between the age-band and month distribution variants.
	HasCustomerAge bool
}

func (table Table) RowCount() int {
	return len(table.Records)
}

func (table Table) IsEmpty() bool {
	return len(table.Records) == 0
}

// Returns the earliest and latest deal dates in the table, and false if the table is empty.
func (table Table) DateRange() (earliest time.Time, latest time.Time, nonEmpty bool) {
	if table.IsEmpty() {
		return time.Time{}, time.Time{}, false
	}

	earliest, latest = table.Records[0].DealDate, table.Records[0].DealDate
	for _, record := range table.Records[1:] {
		if record.DealDate.Before(earliest) {
			earliest = record.DealDate
		}
		if record.DealDate.After(latest) {
			latest = record.DealDate
		}
	}
	return earliest, latest, true
}

// Returns the smallest and largest deal year in the table, and false if the table is empty.
// These bound the dashboard's year range selector.
func (table Table) YearRange() (minYear int, maxYear int, nonEmpty bool) {
	earliest, latest, nonEmpty := table.DateRange()
	if !nonEmpty {
		return 0, 0, false
	}
	return earliest.Year(), latest.Year(), true
}

// Returns the sorted unique values of the given categorical field, for populating the
// dashboard's per-category selectors.
func (table Table) FieldValues(field CategoryField) []string {
	unique := make(map[string]struct{})
	for _, record := range table.Records {
		unique[record.CategoryValue(field)] = struct{}{}
	}

	values := make([]string, 0, len(unique))
	for value := range unique {
		values = append(values, value)
	}
	slices.Sort(values)
	return values
}

// Metadata for the dashboard's interactive filter controls.
type FilterOptions struct {
	Fields  []FieldValues `json:"fields"`
	MinYear int           `json:"minYear"`
	MaxYear int           `json:"maxYear"`
}

type FieldValues struct {
	Field  CategoryField `json:"field"`
	Values []string      `json:"values"`
}

func (table Table) FilterOptions() FilterOptions {
	fields := make([]FieldValues, 0, len(CategoryFields()))
	for _, field := range CategoryFields() {
		fields = append(fields, FieldValues{Field: field, Values: table.FieldValues(field)})
	}

	minYear, maxYear, _ := table.YearRange()
	return FilterOptions{Fields: fields, MinYear: minYear, MaxYear: maxYear}
}
