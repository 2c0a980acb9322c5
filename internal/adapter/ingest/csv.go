package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/wealthlens/stockreport/internal/domain"
)

// ReadHoldings reads the delimited holding source. The first row is the
// column header; every remaining row becomes a field-name to raw-value
// mapping in file order, for the normalizer to type and validate.
//
// A missing file, an empty file, or a row with the wrong number of fields
// fails with a ValidationError; there is no partial read.
func ReadHoldings(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open holding source: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)

	header, err := r.Read()
	if err != nil {
		return nil, &domain.ValidationError{Field: "header", Value: path}
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	rows := make([]map[string]string, 0)
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Ragged rows and quoting errors surface here.
			return nil, &domain.ValidationError{Field: "row", Value: err.Error()}
		}

		row := make(map[string]string, len(header))
		for i, name := range header {
			row[name] = strings.TrimSpace(record[i])
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, &domain.ValidationError{Field: "rows", Value: path}
	}
	return rows, nil
}
