package sales

import "time"

// A single sale from the uploaded dataset. The calendar fields are derived from DealDate once at
// load time, and are never recomputed from a filtered subset.
type Record struct {
	State     string    `json:"state"`
	Make      string    `json:"make"`
	Model     string    `json:"model"`
	BodyStyle string    `json:"bodyStyle"`
	DriveType string    `json:"driveType"`
	Trim      string    `json:"trim"`
	DealDate  time.Time `json:"dealDate"`
	Price     float64   `json:"price"`
	// Nil when the dataset has no CustomerAge column, or when the field was blank for this row.
	CustomerAge *int `json:"customerAge,omitempty"`

	Year       int    `json:"year"`
	Month      int    `json:"month"`      // 1-12
	MonthName  string `json:"monthName"`
	Quarter    int    `json:"quarter"`    // 1-4
	WeekOfYear int    `json:"weekOfYear"` // ISO week
	YearMonth  string `json:"yearMonth"`  // "YYYY-MM", zero-padded
}

func (record *Record) deriveCalendarFields() {
	date := record.DealDate

	record.Year = date.Year()
	record.Month = int(date.Month())
	record.MonthName = date.Month().String()
	record.Quarter = (record.Month-1)/3 + 1
	_, record.WeekOfYear = date.ISOWeek()
	record.YearMonth = date.Format("2006-01")
}

// Returns the record's value for the given categorical field.
func (record Record) CategoryValue(field CategoryField) string {
	switch field {
	case CategoryFieldState:
		return record.State
	case CategoryFieldMake:
		return record.Make
	case CategoryFieldModel:
		return record.Model
	case CategoryFieldBodyStyle:
		return record.BodyStyle
	case CategoryFieldDriveType:
		return record.DriveType
	case CategoryFieldTrim:
		return record.Trim
	default:
		return ""
	}
}
