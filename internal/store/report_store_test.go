package store_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"staywise/internal/models"
	"staywise/internal/store"
	"staywise/internal/store/testutil"
)

func newReport(n int, publishedAt time.Time) *models.Report {
	return &models.Report{
		ReportID:         fmt.Sprintf("bot-%d", n),
		Slug:             fmt.Sprintf("claim-%d-abcdef", n),
		SourceURL:        fmt.Sprintf("https://x/%d", n),
		Fingerprint:      fmt.Sprintf("%016x", n),
		Claim:            fmt.Sprintf("claim %d", n),
		CredibilityScore: 50,
		CreatedAt:        publishedAt,
		PublishedAt:      publishedAt,
	}
}

func TestInsertAndFind(t *testing.T) {
	ctx := context.Background()
	s := store.NewGormReportStore(testutil.DB(t))
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	r := newReport(1, now)
	r.RedFlags = nil
	stored, err := s.Insert(ctx, r)
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if stored.RowID == 0 {
		t.Error("Expected store-assigned row id")
	}

	bySlug, err := s.FindBySlug(ctx, r.Slug)
	if err != nil {
		t.Fatalf("FindBySlug failed: %v", err)
	}
	if bySlug.Fingerprint != r.Fingerprint || bySlug.ReportID != "bot-1" {
		t.Errorf("Unexpected report %+v", bySlug)
	}
	if bySlug.RedFlags == nil || len(bySlug.RedFlags) != 0 {
		t.Errorf("Expected empty red flags, got %v", bySlug.RedFlags)
	}

	byFP, err := s.FindByFingerprint(ctx, r.Fingerprint)
	if err != nil {
		t.Fatalf("FindByFingerprint failed: %v", err)
	}
	if byFP.Slug != r.Slug {
		t.Errorf("Expected slug %s, got %s", r.Slug, byFP.Slug)
	}
}

func TestFindMissing(t *testing.T) {
	ctx := context.Background()
	s := store.NewGormReportStore(testutil.DB(t))

	if _, err := s.FindBySlug(ctx, "nope"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if _, err := s.FindByFingerprint(ctx, "0000000000000000"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestInsertConflicts(t *testing.T) {
	ctx := context.Background()
	s := store.NewGormReportStore(testutil.DB(t))
	now := time.Now().UTC()

	if _, err := s.Insert(ctx, newReport(1, now)); err != nil {
		t.Fatal(err)
	}

	sameFingerprint := newReport(2, now)
	sameFingerprint.Fingerprint = newReport(1, now).Fingerprint
	if _, err := s.Insert(ctx, sameFingerprint); !errors.Is(err, store.ErrConflict) {
		t.Errorf("Expected ErrConflict for duplicate fingerprint, got %v", err)
	}

	sameSlug := newReport(3, now)
	sameSlug.Slug = newReport(1, now).Slug
	if _, err := s.Insert(ctx, sameSlug); !errors.Is(err, store.ErrConflict) {
		t.Errorf("Expected ErrConflict for duplicate slug, got %v", err)
	}

	reports, err := s.ListRecent(ctx, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != 1 {
		t.Errorf("Expected exactly one stored report, got %d", len(reports))
	}
}

func TestListRecentOrdering(t *testing.T) {
	ctx := context.Background()
	s := store.NewGormReportStore(testutil.DB(t))
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	// 1, 2, 3 同一时间；4 最新；0 最早
	times := []time.Time{base.Add(-time.Hour), base, base, base, base.Add(time.Hour)}
	for i, ts := range times {
		if _, err := s.Insert(ctx, newReport(i, ts)); err != nil {
			t.Fatal(err)
		}
	}

	want := []string{"bot-4", "bot-3", "bot-2", "bot-1", "bot-0"}
	for round := 0; round < 3; round++ {
		reports, err := s.ListRecent(ctx, 10, 0)
		if err != nil {
			t.Fatal(err)
		}
		if len(reports) != len(want) {
			t.Fatalf("Expected %d reports, got %d", len(want), len(reports))
		}
		for i, r := range reports {
			if r.ReportID != want[i] {
				t.Errorf("round %d position %d: expected %s, got %s", round, i, want[i], r.ReportID)
			}
		}
	}

	page, err := s.ListRecent(ctx, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 2 || page[0].ReportID != "bot-3" || page[1].ReportID != "bot-2" {
		t.Errorf("Unexpected page %v", page)
	}

	past, err := s.ListRecent(ctx, 10, 100)
	if err != nil {
		t.Fatal(err)
	}
	if past == nil || len(past) != 0 {
		t.Errorf("Expected empty non-nil page past the end, got %v", past)
	}

	none, err := s.ListRecent(ctx, 0, 0)
	if err != nil || len(none) != 0 {
		t.Errorf("Expected empty result for zero limit, got %v %v", none, err)
	}
}

func TestPing(t *testing.T) {
	s := store.NewGormReportStore(testutil.DB(t))
	if err := s.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}
