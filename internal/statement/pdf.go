package statement

import (
	"log/slog"
	"strings"

	"github.com/dslipak/pdf"

	"github.com/spendsense/spendsense/internal/common"
)

// minCellGap is the horizontal gap, in PDF points, that separates two table
// cells. Fragments closer than this belong to the same cell.
const minCellGap = 10.0

// PDFExtractor pulls positioned text out of a statement PDF and rebuilds the
// row-grids that the parser consumes.
type PDFExtractor struct {
	logger *slog.Logger
}

func NewPDFExtractor(logger *slog.Logger) *PDFExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFExtractor{logger: logger}
}

// ExtractTables returns one RawTable per page that has a header row and at
// least one data row. Unreadable pages are skipped; the rest continue.
func (e *PDFExtractor) ExtractTables(path string) ([]RawTable, error) {
	reader, err := pdf.Open(path)
	if err != nil {
		return nil, common.WrapError(err, "open statement pdf")
	}

	var tables []RawTable
	for n := 1; n <= reader.NumPage(); n++ {
		page := reader.Page(n)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			e.logger.Warn("statement.pdf.page_skipped", "page", n, "error", err)
			continue
		}

		grid := make([][]string, 0, len(rows))
		for _, row := range rows {
			cells := clusterCells(row.Content)
			if len(cells) > 0 {
				grid = append(grid, cells)
			}
		}
		// A table needs a header row plus data.
		if len(grid) < 2 {
			continue
		}
		tables = append(tables, RawTable{Header: grid[0], Rows: grid[1:]})
	}

	e.logger.Info("statement.pdf.extracted", "path", path, "pages", reader.NumPage(), "tables", len(tables))
	return tables, nil
}

// clusterCells joins text fragments into cells, splitting wherever the
// horizontal gap to the previous fragment exceeds minCellGap.
func clusterCells(content pdf.TextHorizontal) []string {
	var cells []string
	var current strings.Builder
	lastEnd := 0.0

	for i, frag := range content {
		if i > 0 && frag.X-lastEnd > minCellGap {
			cells = append(cells, strings.TrimSpace(current.String()))
			current.Reset()
		}
		current.WriteString(frag.S)
		lastEnd = frag.X + frag.W
	}
	if current.Len() > 0 {
		cells = append(cells, strings.TrimSpace(current.String()))
	}

	out := cells[:0]
	for _, c := range cells {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}
