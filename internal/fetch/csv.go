package fetch

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/hyp/bioform/internal/model"
)

// ErrNotCSV is returned when an export body looks like an HTML page.
var ErrNotCSV = errors.New("export body is not CSV")

// ParseExport reads a CSV export. A leading byte order mark is removed and
// UTF-16 exports are converted to UTF-8. Quoting errors are tolerated, short
// rows leave the missing columns unset and repeated column names are
// disambiguated with model.UniqueHeader. An empty body yields an empty
// export.
func ParseExport(r io.Reader) (*model.Export, error) {
	br := bufio.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))

	if head, _ := br.Peek(64); looksLikeHTML(head) {
		return nil, fmt.Errorf("%w: %w", model.ErrAuthentication, ErrNotCSV)
	}

	reader := csv.NewReader(br)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return &model.Export{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read export header: %w", err)
	}
	header = model.UniqueHeader(header)

	exp := &model.Export{Header: header}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read export row %d: %w", len(exp.Rows), err)
		}

		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		exp.Rows = append(exp.Rows, row)
	}

	return exp, nil
}

func looksLikeHTML(head []byte) bool {
	head = bytes.ToLower(bytes.TrimSpace(head))
	return bytes.HasPrefix(head, []byte("<!doctype html")) || bytes.HasPrefix(head, []byte("<html"))
}
