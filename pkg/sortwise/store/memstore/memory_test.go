package memstore

import (
	"context"
	"testing"

	"github.com/sortwise/sortwise/pkg/sortwise/store"
)

func TestUpsertAndAllPairs(t *testing.T) {
	ctx := context.Background()
	s := New()
	defer s.Close()

	pairs := []store.QAPair{
		{Question: "can I recycle glass", Answer: "Yes, in the glass bin."},
		{Question: "can I recycle batteries", Answer: "Take them to a collection point."},
	}
	for _, p := range pairs {
		if err := s.UpsertPair(ctx, p); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.AllPairs(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("AllPairs returned %d pairs", len(got))
	}
	if got[0].Question != pairs[0].Question || got[1].Question != pairs[1].Question {
		t.Errorf("insertion order lost: %v", got)
	}
}

func TestUpsertReplacesByQuestion(t *testing.T) {
	ctx := context.Background()
	s := New()

	s.UpsertPair(ctx, store.QAPair{Question: "q", Answer: "old"})
	s.UpsertPair(ctx, store.QAPair{Question: "q", Answer: "new"})

	got, _ := s.AllPairs(ctx)
	if len(got) != 1 || got[0].Answer != "new" {
		t.Errorf("upsert did not replace: %v", got)
	}

	n, _ := s.Count(ctx)
	if n != 1 {
		t.Errorf("Count = %d", n)
	}
}

func TestEmptyQuestionIgnored(t *testing.T) {
	ctx := context.Background()
	s := New()

	s.UpsertPair(ctx, store.QAPair{Question: "", Answer: "x"})
	if n, _ := s.Count(ctx); n != 0 {
		t.Errorf("empty question stored, Count = %d", n)
	}
}
