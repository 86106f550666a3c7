package importer

import (
	"context"
	"io"

	domainMember "coop-loan-backend/internal/domain/member"
	"coop-loan-backend/internal/domain/uow"

	"github.com/xuri/excelize/v2"
)

// numFmtText is the built-in "@" format: cell content is kept as typed.
const numFmtText = 49

const templateRows = 10000

// Template writes an empty import workbook with one sample row and an
// instructions sheet.
func (u *Usecase) Template(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", TemplateSheet); err != nil {
		return err
	}
	if err := writeHeader(f, TemplateSheet); err != nil {
		return err
	}
	sample := append([]string(nil), sampleRow...)
	if err := f.SetSheetRow(TemplateSheet, "A2", &sample); err != nil {
		return err
	}
	body, err := f.NewStyle(&excelize.Style{
		Border:    thinBorder(),
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	last, _ := excelize.ColumnNumberToName(len(columns))
	if err := f.SetCellStyle(TemplateSheet, "A2", last+"2", body); err != nil {
		return err
	}
	// the sample member number must stay text, the body style has no number format
	if err := textColumn(f, TemplateSheet, 2, templateRows); err != nil {
		return err
	}

	if err := writeInstructions(f); err != nil {
		return err
	}
	f.SetActiveSheet(0)
	return f.Write(w)
}

// Export writes every member in the import layout, so the file can be
// re-imported unchanged.
func (u *Usecase) Export(ctx context.Context, w io.Writer) error {
	var members []domainMember.Member
	if err := u.uow.WithinReadTx(ctx, func(r uow.Repos) error {
		var err error
		members, err = r.Members.List(ctx)
		return err
	}); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return err
	}
	if err := writeHeader(f, ExportSheet); err != nil {
		return err
	}
	for i := range members {
		values := exportRow(&members[i])
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(ExportSheet, cell, &values); err != nil {
			return err
		}
	}
	if err := textColumn(f, ExportSheet, 2, len(members)+1); err != nil {
		return err
	}
	return f.Write(w)
}

func exportRow(m *domainMember.Member) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		switch {
		case c.header == colDate:
			out[i] = m.Date.Format(dateLayout)
		case c.header == colMemberNumber:
			out[i] = m.MemberNumber
		default:
			out[i] = c.field.get(m)
		}
	}
	return out
}

func writeHeader(f *excelize.File, sheet string) error {
	headers := Headers()
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	style, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"3498DB"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder(),
	})
	if err != nil {
		return err
	}
	last, _ := excelize.ColumnNumberToName(len(headers))
	if err := f.SetCellStyle(sheet, "A1", last+"1", style); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", last, 20)
}

// textColumn formats the member_number cells of rows 2..lastRow as text.
func textColumn(f *excelize.File, sheet string, firstRow, lastRow int) error {
	if lastRow < firstRow {
		return nil
	}
	text, err := f.NewStyle(&excelize.Style{NumFmt: numFmtText, Border: thinBorder()})
	if err != nil {
		return err
	}
	col := columnOf(colMemberNumber)
	from, _ := excelize.CoordinatesToCellName(col, firstRow)
	to, _ := excelize.CoordinatesToCellName(col, lastRow)
	return f.SetCellStyle(sheet, from, to, text)
}

func writeInstructions(f *excelize.File) error {
	if _, err := f.NewSheet(InstructionsSheet); err != nil {
		return err
	}
	for i, line := range instructions {
		values := []string{line[0], line[1]}
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(InstructionsSheet, cell, &values); err != nil {
			return err
		}
	}
	title, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(InstructionsSheet, "A1", "A1", title); err != nil {
		return err
	}
	if err := f.SetColWidth(InstructionsSheet, "A", "A", 30); err != nil {
		return err
	}
	return f.SetColWidth(InstructionsSheet, "B", "B", 50)
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}

// columnOf returns the 1-based column of header.
func columnOf(header string) int {
	for i, c := range columns {
		if c.header == header {
			return i + 1
		}
	}
	return 0
}
