package attendance

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	attendanceerrors "go-presence/internal/attendance/errors"
	"go-presence/internal/session"

	"github.com/xuri/excelize/v2"
)

var exportHeader = []string{"Date", "Employee ID", "Name", "Clock In", "Clock Out", "Hours", "Status"}

func ParseExportFormat(v string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(v))) {
	case "", ExportCSV:
		return ExportCSV, nil
	case ExportXLSX:
		return ExportXLSX, nil
	case ExportPDF:
		return ExportPDF, nil
	default:
		return "", attendanceerrors.ErrInvalidExportFormat
	}
}

func renderExport(format ExportFormat, rows []Attendance, loc *time.Location, generatedAt time.Time) (ExportFile, error) {
	records := exportRecords(rows, loc)
	base := "attendance_" + generatedAt.Format("20060102_150405")

	switch format {
	case ExportCSV:
		data, err := buildCSV(records)
		if err != nil {
			return ExportFile{}, err
		}
		return ExportFile{Filename: base + ".csv", ContentType: "text/csv", Data: data}, nil
	case ExportXLSX:
		data, err := buildXLSX(records)
		if err != nil {
			return ExportFile{}, err
		}
		return ExportFile{
			Filename:    base + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	case ExportPDF:
		lines := []string{"Attendance Report", "Generated " + generatedAt.Format(time.RFC1123), ""}
		lines = append(lines, strings.Join(exportHeader, " | "))
		for _, r := range records {
			lines = append(lines, strings.Join(r, " | "))
		}
		data, err := buildReportPDF(lines)
		if err != nil {
			return ExportFile{}, err
		}
		return ExportFile{Filename: base + ".pdf", ContentType: "application/pdf", Data: data}, nil
	default:
		return ExportFile{}, attendanceerrors.ErrInvalidExportFormat
	}
}

func exportRecords(rows []Attendance, loc *time.Location) [][]string {
	out := make([][]string, 0, len(rows))
	for _, a := range rows {
		name := ""
		if a.Employee != nil {
			name = a.Employee.Name
		}
		clockOut, hours := "--", ""
		if a.ClockOut != nil {
			clockOut = session.FormatClockTime(a.ClockOut.In(loc))
			hours = fmt.Sprintf("%.2f", a.ClockOut.Sub(a.ClockIn).Hours())
		}
		status := a.Status
		if a.VerificationMethod == "SKIPPED" {
			status += " (UNVERIFIED)"
		}
		out = append(out, []string{
			a.AttendanceDate.Format(session.DayLayout),
			a.EmployeeID.String(),
			name,
			session.FormatClockTime(a.ClockIn.In(loc)),
			clockOut,
			hours,
			status,
		})
	}
	return out
}

func buildCSV(records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	if err := w.WriteAll(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildXLSX(records [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attendance"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return nil, err
	}
	if err := sw.SetRow("A1", toCells(exportHeader)); err != nil {
		return nil, err
	}
	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := sw.SetRow(cell, toCells(r)); err != nil {
			return nil, err
		}
	}
	if err := sw.Flush(); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toCells(row []string) []any {
	cells := make([]any, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return cells
}

const pdfLinesPerPage = 50

// buildReportPDF writes a plain Helvetica text PDF, one line per row, paginated.
func buildReportPDF(lines []string) ([]byte, error) {
	if len(lines) == 0 {
		lines = []string{"Attendance Report"}
	}

	var pages [][]string
	for start := 0; start < len(lines); start += pdfLinesPerPage {
		end := min(start+pdfLinesPerPage, len(lines))
		pages = append(pages, lines[start:end])
	}

	// 1 catalog, 2 pages, 3 font, then a page and a content object per page.
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n", strings.Join(kids, " "), len(pages)),
		"3 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n",
	}
	for i, page := range pages {
		pageObj, contentObj := 4+2*i, 5+2*i
		stream := pdfTextStream(page)
		objects = append(objects,
			fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 842 595] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>\nendobj\n", pageObj, contentObj),
			fmt.Sprintf("%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", contentObj, len(stream), stream),
		)
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)
	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	out.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		out.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	out.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart))

	return out.Bytes(), nil
}

func pdfTextStream(lines []string) string {
	var content strings.Builder
	content.WriteString("BT\n/F1 9 Tf\n11 TL\n40 560 Td\n")
	for i, line := range lines {
		if i == 0 {
			content.WriteString(fmt.Sprintf("(%s) Tj\n", pdfEscape(line)))
			continue
		}
		content.WriteString(fmt.Sprintf("T* (%s) Tj\n", pdfEscape(line)))
	}
	content.WriteString("ET")
	return content.String()
}

func pdfEscape(v string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return replacer.Replace(v)
}
