package sales

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"hermannm.dev/salesdash/csv"
)

func testRecord(t *testing.T, dealDate string, price float64, vehicleMake string) Record {
	t.Helper()

	date, err := time.Parse("2006-01-02", dealDate)
	require.NoError(t, err)

	record := Record{
		State:     "Texas",
		Make:      vehicleMake,
		Model:     "Test",
		BodyStyle: "Sedan",
		DriveType: "FWD",
		Trim:      "Base",
		DealDate:  date,
		Price:     price,
	}
	record.deriveCalendarFields()
	return record
}

func testTable(records ...Record) Table {
	return Table{Records: records}
}

func loadTestTable(t *testing.T, csvText string) Table {
	t.Helper()

	reader, err := csv.NewReader(strings.NewReader(csvText), false)
	require.NoError(t, err)

	table, err := LoadTable(reader)
	require.NoError(t, err)
	return table
}
