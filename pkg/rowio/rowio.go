// Package rowio reads and writes row batches as JSON Lines, one object per
// line, preserving column order through the Row codec.
package rowio

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/codeready-toolchain/wrangle/pkg/directive"
)

// maxLineBytes bounds a single JSONL line (16 MiB).
const maxLineBytes = 16 << 20

// ReadAll reads all rows from r. Blank lines are skipped.
func ReadAll(r io.Reader) ([]*directive.Row, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var rows []*directive.Row
	line := 0
	for scanner.Scan() {
		line++
		data := bytes.TrimSpace(scanner.Bytes())
		if len(data) == 0 {
			continue
		}
		row := directive.NewRow()
		if err := json.Unmarshal(data, row); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

// WriteAll writes rows to w, one JSON object per line.
func WriteAll(w io.Writer, rows []*directive.Row) error {
	bw := bufio.NewWriter(w)
	for _, row := range rows {
		data, err := json.Marshal(row)
		if err != nil {
			return err
		}
		if _, err := bw.Write(data); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
