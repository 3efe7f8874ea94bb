package report

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/wargadata-dev/warga-store/pkg/schema"
)

func sampleRecords() []schema.Record {
	return []schema.Record{
		{ID: 2, Name: "Ani <Lestari>", NationalID: "3201012345678902", Address: `Gang "Mawar" & Melati`, Amount: 750000, CreatedAt: "2/3/2026, 10.00.00"},
		{ID: 1, Name: "Budi Santoso", NationalID: "3201012345678901", Address: "Jl. Merdeka No. 1", Amount: 5000000, CreatedAt: "1/3/2026, 09.00.00"},
	}
}

func TestBuildRowsNumbersFromPosition(t *testing.T) {
	rows := BuildRows(sampleRecords())
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[0].No != 1 || rows[1].No != 2 {
		t.Errorf("Expected positional sequence numbers 1,2, got %d,%d", rows[0].No, rows[1].No)
	}
	if rows[0].Amount != "Rp 750.000" {
		t.Errorf("Expected formatted currency, got %q", rows[0].Amount)
	}
}

func TestSpreadsheetRowsKeysAndValues(t *testing.T) {
	rows := SpreadsheetRows(sampleRecords())
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}

	first := rows[0]
	if first["No"] != "1" {
		t.Errorf("Expected No=1, got %q", first["No"])
	}
	// Spreadsheet cells carry raw text, no markup escaping
	if first["Nama"] != "Ani <Lestari>" {
		t.Errorf("Expected raw name, got %q", first["Nama"])
	}
	if first["NIK"] != "3201012345678902" {
		t.Errorf("Unexpected NIK %q", first["NIK"])
	}
	for _, header := range Columns {
		if _, ok := first[header]; !ok {
			t.Errorf("Missing column key %q", header)
		}
	}
}

func TestRepresentationParity(t *testing.T) {
	records := sampleRecords()
	at := time.Date(2026, time.March, 7, 9, 5, 0, 0, time.Local)

	sheet := SpreadsheetRows(records)
	pdf := PDFHTML(records, at)
	doc := DocHTML(records, at)

	// Identical total count
	countLine := fmt.Sprintf("Total Data: %d", len(records))
	if !strings.Contains(pdf, countLine) {
		t.Errorf("PDF representation missing %q", countLine)
	}
	if !strings.Contains(doc, countLine) {
		t.Errorf("Doc representation missing %q", countLine)
	}
	if len(sheet) != len(records) {
		t.Errorf("Spreadsheet row count %d != record count %d", len(sheet), len(records))
	}

	// Identical per-row values modulo markup escaping
	for i, row := range BuildRows(records) {
		for _, html := range []struct {
			name string
			body string
		}{{"pdf", pdf}, {"doc", doc}} {
			for _, cell := range []string{row.NationalID, row.Amount, row.CreatedAt} {
				if !strings.Contains(html.body, cell) {
					t.Errorf("%s representation row %d missing %q", html.name, i+1, cell)
				}
			}
		}
		cells := row.Cells()
		for c, header := range Columns {
			if sheet[i][header] != cells[c] {
				t.Errorf("Spreadsheet row %d column %q = %q, want %q", i+1, header, sheet[i][header], cells[c])
			}
		}
	}
}

func TestHTMLRepresentationsEscapeFreeText(t *testing.T) {
	records := sampleRecords()
	at := time.Now()

	for _, html := range []struct {
		name string
		body string
	}{
		{"pdf", PDFHTML(records, at)},
		{"doc", DocHTML(records, at)},
	} {
		if strings.Contains(html.body, "Ani <Lestari>") {
			t.Errorf("%s representation embeds unescaped name", html.name)
		}
		if !strings.Contains(html.body, "Ani &lt;Lestari&gt;") {
			t.Errorf("%s representation missing escaped name", html.name)
		}
		if !strings.Contains(html.body, "Gang &quot;Mawar&quot; &amp; Melati") {
			t.Errorf("%s representation missing escaped address", html.name)
		}
	}
}

func TestPDFHTMLIsFragment(t *testing.T) {
	body := PDFHTML(sampleRecords(), time.Now())
	if strings.Contains(body, "<html") {
		t.Error("PDF representation must be a fragment, not a full document")
	}
	if !strings.Contains(body, Title) {
		t.Errorf("PDF representation missing title %q", Title)
	}
}

func TestDocHTMLIsFullDocumentWithOfficeNamespaces(t *testing.T) {
	body := DocHTML(sampleRecords(), time.Now())
	if !strings.Contains(body, "xmlns:o='urn:schemas-microsoft-com:office:office'") ||
		!strings.Contains(body, "xmlns:w='urn:schemas-microsoft-com:office:word'") {
		t.Error("Doc representation missing Office XML namespaces")
	}
	if !strings.HasPrefix(strings.TrimSpace(body), "<html") {
		t.Error("Doc representation must be a full HTML document")
	}
}

func TestEmptySequenceRendersHeadersOnly(t *testing.T) {
	pdf := PDFHTML(nil, time.Now())
	if !strings.Contains(pdf, "Total Data: 0") {
		t.Error("Expected zero count in header block")
	}
	if strings.Count(pdf, "<tr>") != 0 {
		t.Error("Expected no body rows for an empty sequence")
	}
}
