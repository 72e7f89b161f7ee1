package bulk

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/unidoc/unioffice/spreadsheet"

	"github.com/youruser/coverapp/internal/assets"
	"github.com/youruser/coverapp/internal/cover"
)

const sampleCSV = "\n" +
	"Judul,Kategori,Pembicara,Filename,,Notes\n" +
	"Belajar Ekspor,Ekspor,Ani,a.png,ignored,x\n" +
	",,,,,\n" +
	"Foto Produk,Fotografi,Budi,b.png,,\n" +
	"Tanpa Gambar,Astronomi,Citra,,,\n"

func TestIngestCSV(t *testing.T) {
	reg := assets.NewRegistry()
	a := reg.Register("a.png", []byte("img"))
	m := newMapper(reg)

	res, err := m.Ingest(context.Background(), []byte(sampleCSV), "rows.csv")
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if len(res.Items) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(res.Items))
	}
	if res.MissingCount != 1 || len(res.Missing) != 1 || res.Missing[0] != "b.png" {
		t.Errorf("Expected b.png missing, got %d %v", res.MissingCount, res.Missing)
	}

	first := res.Items[0]
	if cover.Value(first.Title) != "Belajar Ekspor" || cover.Value(first.SideImageRef) != a.Ref {
		t.Errorf("Unexpected first row: title %q side %q", cover.Value(first.Title), cover.Value(first.SideImageRef))
	}
	if cover.Value(res.Items[1].SideImageRef) != "" {
		t.Errorf("Expected missing side image to be cleared")
	}
	if cover.Value(res.Items[2].AccentColor) != cover.Default().AccentColor {
		t.Errorf("Expected unmatched category to keep default accent")
	}
}

func TestMissingAccounting(t *testing.T) {
	reg := assets.NewRegistry()
	reg.Register("a.png", []byte("img"))
	m := newMapper(reg)

	csv := "Title,Filename\nA,a.png\nB,b.png\nC,c.png\n"
	res, err := m.Ingest(context.Background(), []byte(csv), "rows.csv")
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if res.MissingCount != 2 {
		t.Errorf("Expected 2 missing, got %d", res.MissingCount)
	}
	for i, want := range []bool{true, false, false} {
		if got := cover.Value(res.Items[i].SideImageRef) != ""; got != want {
			t.Errorf("row %d: expected side image set=%v", i, want)
		}
	}
}

func TestIngestEmpty(t *testing.T) {
	m := newMapper(assets.NewRegistry())

	tests := []struct {
		name     string
		data     string
		filename string
	}{
		{"no rows", "", "rows.csv"},
		{"header only", "Title,Category\n", "rows.csv"},
		{"blank rows only", "Title\n,\n\n", "rows.csv"},
		{"broken workbook", "PK\x03\x04not really a zip", "rows.xlsx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Ingest(context.Background(), []byte(tt.data), tt.filename)
			if !errors.Is(err, ErrEmptySheet) {
				t.Errorf("Expected ErrEmptySheet, got %v", err)
			}
		})
	}
}

func TestStart(t *testing.T) {
	m := newMapper(assets.NewRegistry())

	out := <-m.Start(context.Background(), []byte("Title\nOne\nTwo\n"), "rows.csv")
	if out.Err != nil {
		t.Fatalf("Start failed: %v", out.Err)
	}
	if len(out.Result.Items) != 2 {
		t.Errorf("Expected 2 items, got %d", len(out.Result.Items))
	}

	out = <-m.Start(context.Background(), nil, "rows.csv")
	if !errors.Is(out.Err, ErrEmptySheet) {
		t.Errorf("Expected ErrEmptySheet, got %v", out.Err)
	}
}

func TestIngestCancelled(t *testing.T) {
	m := newMapper(assets.NewRegistry())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := m.Ingest(ctx, []byte("Title\nOne\n"), "rows.csv"); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestIsXLSX(t *testing.T) {
	if !IsXLSX(nil, "Data.XLSX") {
		t.Error("Expected extension match")
	}
	if !IsXLSX([]byte("PK\x03\x04rest"), "upload") {
		t.Error("Expected zip magic match")
	}
	if IsXLSX([]byte("Title\n"), "rows.csv") {
		t.Error("Expected csv not to match")
	}
}

func buildWorkbook(t *testing.T, sheets ...[][]any) []byte {
	t.Helper()
	wb := spreadsheet.New()
	defer wb.Close()
	for _, rows := range sheets {
		sheet := wb.AddSheet()
		for _, vals := range rows {
			row := sheet.AddRow()
			for _, v := range vals {
				cell := row.AddCell()
				switch v := v.(type) {
				case float64:
					cell.SetNumber(v)
				case string:
					cell.SetString(v)
				}
			}
		}
	}
	var buf bytes.Buffer
	if err := wb.Save(&buf); err != nil {
		t.Fatalf("Saving workbook failed: %v", err)
	}
	return buf.Bytes()
}

func TestIngestXLSX(t *testing.T) {
	reg := assets.NewRegistry()
	a := reg.Register("a.png", []byte("img"))
	m := newMapper(reg)

	data := buildWorkbook(t,
		[][]any{
			{"Judul", "Kategori", "Level", "Pembicara", "Side Image"},
			{"Panen Raya", "PERTANIAN", 3.0, "Ani", "x.png"},
			{"Pasar Digital", "Unknown", "Advanced", "Budi", "a.png"},
		},
		[][]any{
			{"Title"},
			{"Second sheet row"},
		},
	)

	res, err := m.Ingest(context.Background(), data, "sessions.xlsx")
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if len(res.Items) != 2 {
		t.Fatalf("Expected 2 rows from the first sheet, got %d", len(res.Items))
	}
	for _, it := range res.Items {
		if cover.Value(it.Title) == "Second sheet row" {
			t.Error("Expected rows of the second sheet to be ignored")
		}
	}

	first := res.Items[0]
	if cover.Value(first.Title) != "Panen Raya" || cover.Value(first.SpeakerName) != "Ani" {
		t.Errorf("Unexpected first row: title %q speaker %q", cover.Value(first.Title), cover.Value(first.SpeakerName))
	}
	if got := cover.Value(first.Level); got != "3" {
		t.Errorf("Expected numeric level formatted as 3, got %q", got)
	}
	if got := cover.Value(first.AccentColor); got != "#c1ff72" {
		t.Errorf("Expected category color #c1ff72, got %q", got)
	}
	if cover.Value(first.SideImageRef) != "" {
		t.Error("Expected missing side image to be cleared")
	}

	if got := cover.Value(res.Items[1].SideImageRef); got != a.Ref {
		t.Errorf("Expected side image %s, got %q", a.Ref, got)
	}
	if res.MissingCount != 1 || len(res.Missing) != 1 || res.Missing[0] != "x.png" {
		t.Errorf("Expected x.png missing, got %d %v", res.MissingCount, res.Missing)
	}
}
