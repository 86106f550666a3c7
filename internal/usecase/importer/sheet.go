package importer

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const dateLayout = "2006-01-02"

type row struct {
	num   int      // 1-based spreadsheet row
	cells []string

	numericDate bool // the date cell is stored as a number, not text
}

func (r row) get(idx int) string {
	if idx < 0 || idx >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[idx])
}

func (r row) blank() bool {
	for _, c := range r.cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// sheet is the first worksheet of an uploaded workbook.
type sheet struct {
	header map[string]int // header -> column index, first occurrence
	rows   []row          // data rows, header excluded
	empty  bool           // no rows at all
}

func (s *sheet) col(header string) int {
	if idx, ok := s.header[header]; ok {
		return idx
	}
	return -1
}

// readSheet loads raw cell values so date cells arrive as serial numbers and
// numeric member numbers keep their digits.
func readSheet(b []byte) (*sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	names := f.GetSheetList()
	if len(names) == 0 {
		return nil, errors.New("workbook has no worksheets")
	}
	raw, err := f.GetRows(names[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	s := &sheet{header: map[string]int{}}
	if len(raw) == 0 {
		s.empty = true
		return s, nil
	}
	for i, h := range raw[0] {
		h = strings.TrimSpace(h)
		if _, seen := s.header[h]; h != "" && !seen {
			s.header[h] = i
		}
	}
	dateCol := s.col(colDate)
	for i, cells := range raw[1:] {
		rw := row{num: i + 2, cells: cells}
		if dateCol >= 0 && rw.get(dateCol) != "" {
			if rw.numericDate, err = numericCell(f, names[0], dateCol, rw.num); err != nil {
				return nil, err
			}
		}
		s.rows = append(s.rows, rw)
	}
	return s, nil
}

// numericCell reports whether the cell holds a number (date cells included)
// rather than a string.
func numericCell(f *excelize.File, sheetName string, col, rowNum int) (bool, error) {
	cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
	if err != nil {
		return false, err
	}
	typ, err := f.GetCellType(sheetName, cell)
	if err != nil {
		return false, err
	}
	switch typ {
	case excelize.CellTypeUnset, excelize.CellTypeNumber, excelize.CellTypeDate:
		return true, nil
	}
	return false, nil
}

// parseDate accepts ISO dates. Date serials are accepted only from numeric
// cells; text such as "2024" is never read as a serial.
func parseDate(v string, numeric bool) (time.Time, error) {
	if t, err := time.Parse(dateLayout, v); err == nil {
		return t, nil
	}
	if !numeric {
		return time.Time{}, fmt.Errorf("invalid date %q", v)
	}
	if serial, err := strconv.ParseFloat(v, 64); err == nil && serial > 0 {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", v)
}
