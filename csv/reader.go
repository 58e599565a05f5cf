package csv

import (
	"encoding/csv"
	"errors"
	"io"

	"hermannm.dev/wrap"
)

type Reader struct {
	inner      *csv.Reader
	file       io.ReadSeeker
	currentRow int
}

func NewReader(csvFile io.ReadSeeker, skipHeaderRow bool) (*Reader, error) {
	delimiter, err := deduceFieldDelimiter(csvFile, 20)
	if err != nil {
		return nil, err
	}

	reader := &Reader{inner: newInnerReader(csvFile, delimiter), file: csvFile, currentRow: 0}

	if skipHeaderRow {
		if _, err := reader.ReadHeaderRow(); err != nil {
			return nil, wrap.Error(err, "failed to skip CSV header row")
		}
	}

	return reader, nil
}

func newInnerReader(csvFile io.ReadSeeker, delimiter rune) *csv.Reader {
	reader := csv.NewReader(csvFile)
	reader.ReuseRecord = true
	reader.Comma = delimiter
	return reader
}

func (reader *Reader) ReadRow() (row []string, done bool, err error) {
	reader.currentRow++

	row, err = reader.inner.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, true, nil
		} else {
			return nil, false, err
		}
	}

	return row, false, nil
}

func (reader *Reader) ReadHeaderRow() ([]string, error) {
	if reader.currentRow != 0 {
		return nil, errors.New("tried to read header row after reading previous rows")
	}

	row, done, err := reader.ReadRow()
	if done {
		return nil, errors.New("csv file ended before header row")
	}
	if err != nil {
		return nil, err
	}

	// The returned row must survive subsequent reads, so it is copied out of the inner reader's
	// reused record buffer.
	header := make([]string, len(row))
	copy(header, row)
	return header, nil
}

func (reader *Reader) CurrentRow() int {
	return reader.currentRow
}

func (reader *Reader) ResetReadPosition(skipHeaderRow bool) error {
	if _, err := reader.file.Seek(0, io.SeekStart); err != nil {
		return err
	}

	reader.currentRow = 0
	reader.inner = newInnerReader(reader.file, reader.inner.Comma)

	if skipHeaderRow {
		if _, err := reader.ReadHeaderRow(); err != nil {
			return wrap.Error(err, "failed to skip CSV header row")
		}
	}

	return nil
}
