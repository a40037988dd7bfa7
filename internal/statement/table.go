package statement

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spendsense/spendsense/internal/common"
)

// RawTable is one extracted row-grid from a statement page. The first row of
// the grid is the header; Rows hold the data cells in reading order.
type RawTable struct {
	Header []string
	Rows   [][]string
}

// Row is a normalized statement row keyed by reconciled column names.
type Row map[string]string

// Parser reconciles heterogeneous statement tables into uniform row records.
type Parser struct {
	logger *slog.Logger
}

func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// Parse flattens all tables into one ordered row stream. A table whose
// header cannot be reconciled is skipped and the rest continue; no tables at
// all yields an empty stream, not an error.
func (p *Parser) Parse(tables []RawTable) []Row {
	rows := make([]Row, 0)
	for i, table := range tables {
		keys, err := reconcileHeader(table)
		if err != nil {
			p.logger.Warn("statement.table.skipped", "table", i, "error", err)
			continue
		}
		for _, cells := range table.Rows {
			row := make(Row, len(keys))
			for col, key := range keys {
				if key == "" {
					continue
				}
				if col < len(cells) {
					row[key] = strings.TrimSpace(cells[col])
				} else {
					row[key] = ""
				}
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// reconcileHeader maps each column position to its unique key. Blank headers
// become col_N, names are lowercased and trimmed, columns empty across every
// data row are dropped (key ""), and later duplicates get an _N suffix.
func reconcileHeader(table RawTable) ([]string, error) {
	if len(table.Header) == 0 {
		return nil, common.WrapError(common.ErrMalformedTable, "empty header row")
	}

	keys := make([]string, len(table.Header))
	for i, h := range table.Header {
		name := strings.ToLower(strings.TrimSpace(h))
		if name == "" {
			name = fmt.Sprintf("col_%d", i)
		}
		keys[i] = name
	}

	// Entirely empty columns carry no data and commonly collide with a real
	// column of the same name.
	for col := range keys {
		empty := true
		for _, cells := range table.Rows {
			if col < len(cells) && strings.TrimSpace(cells[col]) != "" {
				empty = false
				break
			}
		}
		if empty && len(table.Rows) > 0 {
			keys[col] = ""
		}
	}

	seen := make(map[string]int)
	for i, key := range keys {
		if key == "" {
			continue
		}
		n := seen[key]
		seen[key] = n + 1
		if n > 0 {
			keys[i] = fmt.Sprintf("%s_%d", key, n)
		}
	}

	unique := make(map[string]struct{})
	for _, key := range keys {
		if key == "" {
			continue
		}
		if _, dup := unique[key]; dup {
			return nil, common.WrapError(common.ErrMalformedTable, "duplicate column "+key)
		}
		unique[key] = struct{}{}
	}
	return keys, nil
}
