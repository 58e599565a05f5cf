package csv

import (
	"encoding/csv"
	"io"

	"hermannm.dev/wrap"
)

type Writer struct {
	inner *csv.Writer
}

func NewWriter(destination io.Writer) *Writer {
	return &Writer{inner: csv.NewWriter(destination)}
}

func (writer *Writer) WriteRow(row []string) error {
	return writer.inner.Write(row)
}

// Flushes buffered rows to the underlying writer. Must be called after the last WriteRow.
func (writer *Writer) Flush() error {
	writer.inner.Flush()
	if err := writer.inner.Error(); err != nil {
		return wrap.Error(err, "failed to flush CSV writer")
	}
	return nil
}
