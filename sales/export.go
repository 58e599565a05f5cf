package sales

import (
	"io"
	"strconv"
	"time"

	"hermannm.dev/salesdash/csv"
	"hermannm.dev/wrap"
)

// Returns the download filename for a filtered data export at the given time. The date stamp is
// the time of export, not a value from the data.
func ExportFilename(exportTime time.Time) string {
	return "filtered_sales_data_" + exportTime.Format("20060102") + ".csv"
}

// Serializes the table as UTF-8 CSV with the same column set and order as the loader produces,
// derived calendar fields included. The output round-trips: loading it again yields the same
// records, with the same derived field values.
func WriteTable(table Table, destination io.Writer) error {
	writer := csv.NewWriter(destination)

	if err := writer.WriteRow(exportColumns(table)); err != nil {
		return wrap.Error(err, "failed to write CSV header row")
	}

	var row []string
	for i, record := range table.Records {
		row = exportRow(record, table.HasCustomerAge, row)
		if err := writer.WriteRow(row); err != nil {
			return wrap.Errorf(err, "failed to write CSV row %d", i+1)
		}
	}

	return writer.Flush()
}

func exportColumns(table Table) []string {
	columns := make([]string, 0, len(RequiredColumns)+7)
	columns = append(columns, RequiredColumns...)
	if table.HasCustomerAge {
		columns = append(columns, ColumnCustomerAge)
	}
	return append(
		columns,
		ColumnYear, ColumnMonth, ColumnMonthName, ColumnQuarter, ColumnWeekOfYear, ColumnYearMonth,
	)
}

func exportRow(record Record, hasCustomerAge bool, row []string) []string {
	row = append(row[:0],
		record.State,
		record.Make,
		record.Model,
		record.BodyStyle,
		record.DriveType,
		record.Trim,
		formatDealDate(record.DealDate),
		strconv.FormatFloat(record.Price, 'f', -1, 64),
	)
	if hasCustomerAge {
		if record.CustomerAge != nil {
			row = append(row, strconv.Itoa(*record.CustomerAge))
		} else {
			row = append(row, "")
		}
	}
	return append(row,
		strconv.Itoa(record.Year),
		strconv.Itoa(record.Month),
		record.MonthName,
		strconv.Itoa(record.Quarter),
		strconv.Itoa(record.WeekOfYear),
		record.YearMonth,
	)
}

func formatDealDate(date time.Time) string {
	if hour, minute, second := date.Clock(); hour == 0 && minute == 0 && second == 0 {
		return date.Format("2006-01-02")
	}
	return date.Format(time.RFC3339)
}
