package sales

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"hermannm.dev/salesdash/csv"
	"hermannm.dev/wrap"
)

// LoadError is returned when an uploaded CSV file does not match the expected sales data schema.
// A malformed upload is rejected wholesale; no rows from it are kept.
type LoadError struct {
	Reason string
	// 0 when the error is not tied to a specific row (e.g. a missing column).
	Row    int
	Column string
	Cause  error
}

func (err LoadError) Error() string {
	var message strings.Builder
	message.WriteString(err.Reason)
	switch {
	case err.Column != "" && err.Row != 0:
		fmt.Fprintf(&message, " (column '%s', row %d)", err.Column, err.Row)
	case err.Column != "":
		fmt.Fprintf(&message, " (column '%s')", err.Column)
	case err.Row != 0:
		fmt.Fprintf(&message, " (row %d)", err.Row)
	}
	if err.Cause != nil {
		message.WriteString(": ")
		message.WriteString(err.Cause.Error())
	}
	return message.String()
}

func (err LoadError) Unwrap() error {
	return err.Cause
}

// SchemaDescription is surfaced to the user alongside a LoadError, so they can fix their upload.
var SchemaDescription = fmt.Sprintf(
	"expected a UTF-8 CSV file with a header row containing the columns %s (in any order, extra"+
		" columns are ignored), where %s is a date and %s is a decimal number; a %s column of"+
		" whole numbers is used for age analysis when present",
	strings.Join(RequiredColumns, ", "),
	ColumnDealDate,
	ColumnPrice,
	ColumnCustomerAge,
)

// Date formats accepted for the DealDate column, tried in order.
var dealDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
}

// Parses the given CSV (with its header row not yet read) into a sales table, deriving the
// calendar fields of every record from its DealDate.
//
// Loading is a pure function of the file contents: the same file always produces the same table,
// so callers may cache the result keyed by file identity (see the datastore package).
func LoadTable(reader *csv.Reader) (Table, error) {
	header, err := reader.ReadHeaderRow()
	if err != nil {
		return Table{}, LoadError{Reason: "failed to read CSV header row", Cause: err}
	}

	columns, err := mapColumnIndices(header)
	if err != nil {
		return Table{}, err
	}

	table := Table{HasCustomerAge: columns.customerAge != -1}
	for {
		row, done, err := reader.ReadRow()
		if done {
			break
		}
		if err != nil {
			return Table{}, LoadError{
				Reason: "failed to read CSV row",
				Row:    reader.CurrentRow(),
				Cause:  err,
			}
		}

		record, err := columns.parseRecord(row, reader.CurrentRow())
		if err != nil {
			return Table{}, err
		}

		table.Records = append(table.Records, record)
	}

	return table, nil
}

// Positions of the sales data columns within an uploaded CSV's header. -1 marks the optional
// CustomerAge column as absent.
type columnIndices struct {
	state       int
	make        int
	model       int
	bodyStyle   int
	driveType   int
	trim        int
	dealDate    int
	price       int
	customerAge int
}

func mapColumnIndices(header []string) (columnIndices, error) {
	indexByName := make(map[string]int, len(header))
	for i, columnName := range header {
		indexByName[strings.TrimSpace(columnName)] = i
	}

	columns := columnIndices{customerAge: -1}

	var missingColumns []error
	for _, required := range []struct {
		name  string
		index *int
	}{
		{ColumnState, &columns.state},
		{ColumnMake, &columns.make},
		{ColumnModel, &columns.model},
		{ColumnBodyStyle, &columns.bodyStyle},
		{ColumnDriveType, &columns.driveType},
		{ColumnTrim, &columns.trim},
		{ColumnDealDate, &columns.dealDate},
		{ColumnPrice, &columns.price},
	} {
		if index, found := indexByName[required.name]; found {
			*required.index = index
		} else {
			missingColumns = append(missingColumns, fmt.Errorf("'%s' missing", required.name))
		}
	}
	if len(missingColumns) != 0 {
		return columnIndices{}, LoadError{
			Reason: "uploaded CSV lacks required columns",
			Cause:  wrap.Errors("missing columns", missingColumns...),
		}
	}

	if index, found := indexByName[ColumnCustomerAge]; found {
		columns.customerAge = index
	}

	return columns, nil
}

func (columns columnIndices) parseRecord(row []string, rowNumber int) (Record, error) {
	maxIndex := columns.price
	for _, index := range []int{
		columns.state, columns.make, columns.model, columns.bodyStyle, columns.driveType,
		columns.trim, columns.dealDate, columns.customerAge,
	} {
		if index > maxIndex {
			maxIndex = index
		}
	}
	if len(row) <= maxIndex {
		return Record{}, LoadError{
			Reason: "CSV row has fewer fields than the header",
			Row:    rowNumber,
		}
	}

	record := Record{
		State:     row[columns.state],
		Make:      row[columns.make],
		Model:     row[columns.model],
		BodyStyle: row[columns.bodyStyle],
		DriveType: row[columns.driveType],
		Trim:      row[columns.trim],
	}

	dealDate, err := parseDealDate(row[columns.dealDate])
	if err != nil {
		return Record{}, LoadError{
			Reason: "unparseable deal date",
			Row:    rowNumber,
			Column: ColumnDealDate,
			Cause:  err,
		}
	}
	record.DealDate = dealDate
	record.deriveCalendarFields()

	price, err := strconv.ParseFloat(strings.TrimSpace(row[columns.price]), 64)
	if err != nil {
		return Record{}, LoadError{
			Reason: "unparseable price",
			Row:    rowNumber,
			Column: ColumnPrice,
			Cause:  err,
		}
	}
	record.Price = price

	if columns.customerAge != -1 {
		if field := strings.TrimSpace(row[columns.customerAge]); field != "" {
			age, err := strconv.Atoi(field)
			if err != nil {
				return Record{}, LoadError{
					Reason: "unparseable customer age",
					Row:    rowNumber,
					Column: ColumnCustomerAge,
					Cause:  err,
				}
			}
			record.CustomerAge = &age
		}
	}

	return record, nil
}

func parseDealDate(field string) (time.Time, error) {
	field = strings.TrimSpace(field)

	var lastErr error
	for _, layout := range dealDateLayouts {
		date, err := time.Parse(layout, field)
		if err == nil {
			return date, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
