// Package report turns record sequences into the tabular content of
// the three export formats. It builds structured rows first and lets
// one rendering step per format consume them, so the generator itself
// carries no encoding-library dependency.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/wargadata-dev/warga-store/internal/format"
	"github.com/wargadata-dev/warga-store/pkg/schema"
)

// Title heads every report representation.
const Title = "Laporan Data Penduduk"

// SheetName is the single worksheet name of the spreadsheet export.
const SheetName = "Data Penduduk"

// Columns are the six column headers, in order, shared by all three
// representations.
var Columns = [6]string{"No", "Nama", "NIK", "Alamat", "Nominal (Rp)", "Tanggal Input"}

// ColumnWidths are the spreadsheet column widths in character units.
var ColumnWidths = [6]float64{5, 25, 18, 30, 15, 20}

// Row is one rendered table row. No is re-derived from position, never
// from the stored record id. Amount is already currency-formatted.
type Row struct {
	No         int
	Name       string
	NationalID string
	Address    string
	Amount     string
	CreatedAt  string
}

// Cells returns the row values in column order, No as text.
func (r Row) Cells() [6]string {
	return [6]string{strconv.Itoa(r.No), r.Name, r.NationalID, r.Address, r.Amount, r.CreatedAt}
}

// BuildRows converts records to rows, numbering them 1-based in
// sequence order.
func BuildRows(records []schema.Record) []Row {
	rows := make([]Row, len(records))
	for i, rec := range records {
		rows[i] = Row{
			No:         i + 1,
			Name:       rec.Name,
			NationalID: rec.NationalID,
			Address:    rec.Address,
			Amount:     format.Currency(rec.Amount),
			CreatedAt:  rec.CreatedAt,
		}
	}
	return rows
}

// SpreadsheetRows is the spreadsheet representation: row mappings
// keyed by the human-readable column headers. Cell values are not
// markup-escaped; spreadsheet cells are not markup.
func SpreadsheetRows(records []schema.Record) []map[string]string {
	rows := BuildRows(records)
	out := make([]map[string]string, len(rows))
	for i, row := range rows {
		cells := row.Cells()
		m := make(map[string]string, len(Columns))
		for c, header := range Columns {
			m[header] = cells[c]
		}
		out[i] = m
	}
	return out
}

// PDFHTML renders the fragment handed to the PDF rasterizer: a styled
// header block followed by the table. Name and address are escaped;
// the digit-only and pre-formatted columns are embedded as-is.
func PDFHTML(records []schema.Record, generatedAt time.Time) string {
	var b strings.Builder

	b.WriteString(`<div style="font-family: Arial, sans-serif; padding: 20px;">` + "\n")
	fmt.Fprintf(&b, `<h1 style="text-align: center; color: #333; margin-bottom: 5px;">%s</h1>`+"\n", Title)
	fmt.Fprintf(&b, `<p style="text-align: center; color: #666; margin-bottom: 20px;">Dicetak pada: %s<br>Total Data: %d</p>`+"\n",
		format.Timestamp(generatedAt), len(records))

	b.WriteString(`<table style="width: 100%; border-collapse: collapse; font-size: 12px;">` + "\n<thead>\n")
	b.WriteString(`<tr style="background-color: #667eea; color: white;">` + "\n")
	for _, header := range Columns {
		fmt.Fprintf(&b, `<th style="border: 1px solid #ddd; padding: 8px; text-align: left;">%s</th>`+"\n", header)
	}
	b.WriteString("</tr>\n</thead>\n<tbody>\n")

	for _, row := range BuildRows(records) {
		b.WriteString("<tr>\n")
		fmt.Fprintf(&b, `<td style="border: 1px solid #ddd; padding: 8px; text-align: center;"><strong>%d</strong></td>`+"\n", row.No)
		fmt.Fprintf(&b, `<td style="border: 1px solid #ddd; padding: 8px;">%s</td>`+"\n", format.EscapeMarkup(row.Name))
		fmt.Fprintf(&b, `<td style="border: 1px solid #ddd; padding: 8px; text-align: center;"><strong>%s</strong></td>`+"\n", row.NationalID)
		fmt.Fprintf(&b, `<td style="border: 1px solid #ddd; padding: 8px;">%s</td>`+"\n", format.EscapeMarkup(row.Address))
		fmt.Fprintf(&b, `<td style="border: 1px solid #ddd; padding: 8px; text-align: right;">%s</td>`+"\n", row.Amount)
		fmt.Fprintf(&b, `<td style="border: 1px solid #ddd; padding: 8px;">%s</td>`+"\n", row.CreatedAt)
		b.WriteString("</tr>\n")
	}

	b.WriteString("</tbody>\n</table>\n</div>\n")
	return b.String()
}

// DocHTML renders the word-processor representation: the same header
// block and row values as the PDF fragment, wrapped in a complete HTML
// document with the Office XML namespaces, using the bordered
// larger-padding styling word processors expect.
func DocHTML(records []schema.Record, generatedAt time.Time) string {
	var b strings.Builder

	b.WriteString(`<html xmlns:o='urn:schemas-microsoft-com:office:office' xmlns:w='urn:schemas-microsoft-com:office:word' xmlns='http://www.w3.org/TR/REC-html40'>` + "\n")
	b.WriteString("<head>\n<meta charset='utf-8'>\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", SheetName)
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, `<h1 style="text-align: center; color: #333;">%s</h1>`+"\n", Title)
	fmt.Fprintf(&b, `<p style="text-align: center; color: #666;">Dicetak pada: %s</p>`+"\n", format.Timestamp(generatedAt))
	fmt.Fprintf(&b, `<p style="text-align: center; color: #666;">Total Data: %d</p>`+"\n", len(records))

	b.WriteString(`<table border="1" cellpadding="10" cellspacing="0" style="width: 100%; border-collapse: collapse;">` + "\n<thead>\n")
	b.WriteString(`<tr style="background-color: #667eea; color: white;">` + "\n")
	aligns := [6]string{"center", "left", "center", "left", "right", "left"}
	for i, header := range Columns {
		fmt.Fprintf(&b, `<th style="border: 1px solid #999; padding: 10px; text-align: %s; font-weight: bold;">%s</th>`+"\n", aligns[i], header)
	}
	b.WriteString("</tr>\n</thead>\n<tbody>\n")

	for _, row := range BuildRows(records) {
		b.WriteString("<tr>\n")
		fmt.Fprintf(&b, `<td style="border: 1px solid #999; padding: 10px; text-align: center;"><strong>%d</strong></td>`+"\n", row.No)
		fmt.Fprintf(&b, `<td style="border: 1px solid #999; padding: 10px;">%s</td>`+"\n", format.EscapeMarkup(row.Name))
		fmt.Fprintf(&b, `<td style="border: 1px solid #999; padding: 10px; text-align: center;"><strong>%s</strong></td>`+"\n", row.NationalID)
		fmt.Fprintf(&b, `<td style="border: 1px solid #999; padding: 10px;">%s</td>`+"\n", format.EscapeMarkup(row.Address))
		fmt.Fprintf(&b, `<td style="border: 1px solid #999; padding: 10px; text-align: right;">%s</td>`+"\n", row.Amount)
		fmt.Fprintf(&b, `<td style="border: 1px solid #999; padding: 10px;">%s</td>`+"\n", row.CreatedAt)
		b.WriteString("</tr>\n")
	}

	b.WriteString("</tbody>\n</table>\n</body>\n</html>\n")
	return b.String()
}
