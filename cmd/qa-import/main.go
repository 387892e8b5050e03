// Command qa-import loads a question/answer CSV into the SQLite corpus
// used by the retrieval fallback.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/sortwise/sortwise/pkg/sortwise/store"
	"github.com/sortwise/sortwise/pkg/sortwise/store/sqlite"
)

func main() {
	var (
		csvPath = flag.String("csv", "", "CSV file with question,answer rows (required)")
		dbPath  = flag.String("db", "", "SQLite database path (required)")
	)
	flag.Parse()

	if *csvPath == "" {
		log.Fatal("--csv required")
	}
	if *dbPath == "" {
		log.Fatal("--db required")
	}

	ctx := context.Background()

	st, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	imported, skipped, err := importCSV(ctx, st, *csvPath)
	if err != nil {
		log.Fatal(err)
	}

	total, err := st.Count(ctx)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Imported %d pairs (%d skipped), corpus now holds %d.\n", imported, skipped, total)
}

// importCSV reads question,answer rows and upserts them. A header row
// named exactly "question,answer" is skipped; rows with a blank
// question or answer are counted but not stored.
func importCSV(ctx context.Context, st store.Store, path string) (imported, skipped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2

	first := true
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, skipped, fmt.Errorf("read csv: %w", err)
		}

		question := strings.TrimSpace(record[0])
		answer := strings.TrimSpace(record[1])

		if first {
			first = false
			if strings.EqualFold(question, "question") && strings.EqualFold(answer, "answer") {
				continue
			}
		}

		if question == "" || answer == "" {
			skipped++
			continue
		}

		if err := st.UpsertPair(ctx, store.QAPair{Question: question, Answer: answer}); err != nil {
			return imported, skipped, fmt.Errorf("upsert %q: %w", question, err)
		}
		imported++
	}

	return imported, skipped, nil
}
