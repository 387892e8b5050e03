package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sortwise/sortwise/pkg/sortwise/store/memstore"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "qa.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestImportCSV(t *testing.T) {
	path := writeCSV(t, "question,answer\ncan I recycle glass,Yes glass is recyclable.\nwhat about batteries,Take them to a collection point.\n")
	st := memstore.New()
	defer st.Close()

	imported, skipped, err := importCSV(context.Background(), st, path)
	if err != nil {
		t.Fatalf("importCSV: %v", err)
	}
	if imported != 2 {
		t.Errorf("imported = %d", imported)
	}
	if skipped != 0 {
		t.Errorf("skipped = %d", skipped)
	}

	pairs, err := st.AllPairs(context.Background())
	if err != nil {
		t.Fatalf("AllPairs: %v", err)
	}
	if len(pairs) != 2 {
		t.Errorf("stored %d pairs", len(pairs))
	}
}

func TestImportCSVNoHeader(t *testing.T) {
	path := writeCSV(t, "can I recycle glass,Yes glass is recyclable.\n")
	st := memstore.New()
	defer st.Close()

	imported, _, err := importCSV(context.Background(), st, path)
	if err != nil {
		t.Fatalf("importCSV: %v", err)
	}
	if imported != 1 {
		t.Errorf("imported = %d", imported)
	}
}

func TestImportCSVSkipsBlankFields(t *testing.T) {
	path := writeCSV(t, "question,answer\n,no question here\nreal question,\nok question,ok answer\n")
	st := memstore.New()
	defer st.Close()

	imported, skipped, err := importCSV(context.Background(), st, path)
	if err != nil {
		t.Fatalf("importCSV: %v", err)
	}
	if imported != 1 {
		t.Errorf("imported = %d", imported)
	}
	if skipped != 2 {
		t.Errorf("skipped = %d", skipped)
	}
}

func TestImportCSVMalformedRow(t *testing.T) {
	path := writeCSV(t, "question,answer\nonly one field\n")
	st := memstore.New()
	defer st.Close()

	if _, _, err := importCSV(context.Background(), st, path); err == nil {
		t.Error("expected error for malformed row")
	}
}

func TestImportCSVMissingFile(t *testing.T) {
	st := memstore.New()
	defer st.Close()

	if _, _, err := importCSV(context.Background(), st, "/nonexistent/qa.csv"); err == nil {
		t.Error("expected error for missing file")
	}
}
