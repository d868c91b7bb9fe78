package provenance

import (
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func newTestLog(t *testing.T) *Log {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	l, err := NewLog(db)
	if err != nil {
		t.Fatalf("NewLog: %v", err)
	}
	return l
}

func TestRecord_FillsIDAndTimestamp(t *testing.T) {
	l := newTestLog(t)
	err := l.Record(Entry{
		Fingerprint: "fp-1",
		Mode:        "mock",
		InputsJSON:  `{"location_key":"geo_1"}`,
		Outcome:     OutcomeStored,
		NodeCount:   3,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries, err := l.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.AttemptID == "" {
		t.Error("attempt ID should be generated")
	}
	if e.CreatedAt.IsZero() {
		t.Error("timestamp should be filled in")
	}
	if e.NodeCount != 3 || e.Outcome != OutcomeStored {
		t.Errorf("round-trip mismatch: %+v", e)
	}
}

func TestRecent_NewestFirstAndLimited(t *testing.T) {
	l := newTestLog(t)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		err := l.Record(Entry{
			Fingerprint: "fp-1",
			Mode:        "mock",
			InputsJSON:  "{}",
			Outcome:     OutcomeHit,
			CreatedAt:   base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	entries, err := l.Recent(3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if !entries[0].CreatedAt.After(entries[1].CreatedAt) {
		t.Error("entries should be newest first")
	}
}

func TestCountByFingerprint(t *testing.T) {
	l := newTestLog(t)
	for _, fp := range []string{"fp-a", "fp-a", "fp-b"} {
		if err := l.Record(Entry{Fingerprint: fp, Mode: "mock", InputsJSON: "{}", Outcome: OutcomeStored}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	n, err := l.CountByFingerprint("fp-a")
	if err != nil {
		t.Fatalf("CountByFingerprint: %v", err)
	}
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
	if n, _ := l.CountByFingerprint("fp-missing"); n != 0 {
		t.Errorf("count for unknown fp = %d", n)
	}
}

func TestOpen_CreatesFileDatabase(t *testing.T) {
	dir := t.TempDir()
	l, err := Open(dir + "/attempts.db")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer l.Close()

	if err := l.Record(Entry{Fingerprint: "fp", Mode: "real", InputsJSON: "{}", Outcome: OutcomeDispatchError, Detail: "status 502"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	entries, err := l.Recent(1)
	if err != nil || len(entries) != 1 {
		t.Fatalf("Recent: %v, %d entries", err, len(entries))
	}
	if entries[0].Detail != "status 502" {
		t.Errorf("detail = %q", entries[0].Detail)
	}
}
