package valve

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// ReadTSV reads a tab-separated file with a header row into header-keyed records.
// Missing trailing cells read as empty strings.
func ReadTSV(r io.Reader) ([]map[string]string, error) {
	reader := newTSVReader(r)

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}

		return nil, fmt.Errorf("reading header: %w", err)
	}

	var out []map[string]string

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}

		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = record[i]
			} else {
				row[h] = ""
			}
		}

		out = append(out, row)
	}

	return out, nil
}

func newTSVReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	return reader
}

// WriteTSV writes a header row and records to w.
func WriteTSV(w io.Writer, headers []string, records [][]string) error {
	writer := csv.NewWriter(w)
	writer.Comma = '\t'

	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("writing records: %w", err)
	}

	return nil
}

// WriteTSVFile writes a TSV file at path, creating its directory if needed.
func WriteTSVFile(path string, headers []string, records [][]string) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, filePerm)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	if err := WriteTSV(f, headers, records); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}
