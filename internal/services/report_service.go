package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"staywise/internal/logger"
	"staywise/internal/models"
	"staywise/internal/store"
	"staywise/internal/utils"
)

const (
	DefaultFeedLimit = 20
	MaxFeedLimit     = 50

	feedCachePrefix   = "feed:"
	reportCachePrefix = "report:"
)

// PublishResult 发布结果，重复发布同一 URL 也是成功
type PublishResult struct {
	Slug   string
	Status string // models.StatusPublished | models.StatusAlreadyExists
}

func (r PublishResult) Published() bool {
	return r.Status == models.StatusPublished
}

// ReportService 发布与查询报告
type ReportService struct {
	store   store.ReportStore
	cache   *utils.Cache
	feedTTL time.Duration
	log     *logger.Logger

	// 每次发布后递增，防止并发读把旧 feed 写回缓存
	feedGen atomic.Uint64

	now      func() time.Time
	makeSlug func(claim string) string
}

// NewReportService cache 可为 nil（不缓存）
func NewReportService(st store.ReportStore, cache *utils.Cache, feedTTL time.Duration, log *logger.Logger) *ReportService {
	return &ReportService{
		store:    st,
		cache:    cache,
		feedTTL:  feedTTL,
		log:      log.With("component", "reports"),
		now:      func() time.Time { return time.Now().UTC() },
		makeSlug: MakeSlug,
	}
}

// Publish 幂等发布：同一 source_url 无论提交多少次都只存一条，并始终返回最初的 slug
func (s *ReportService) Publish(ctx context.Context, in *models.ReportInput) (PublishResult, error) {
	if err := validateInput(in); err != nil {
		return PublishResult{}, err
	}

	sourceURL := in.URL()
	fingerprint := Fingerprint(sourceURL)

	existing, err := s.store.FindByFingerprint(ctx, fingerprint)
	if err == nil {
		s.log.Info("duplicate publish", "fingerprint", fingerprint, "slug", existing.Slug)
		return PublishResult{Slug: existing.Slug, Status: models.StatusAlreadyExists}, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return PublishResult{}, err
	}

	publishedAt := s.now()
	createdAt, err := parseCreatedAt(in.CreatedAt, publishedAt)
	if err != nil {
		return PublishResult{}, err
	}

	report := &models.Report{
		ReportID:         in.ID,
		Slug:             s.makeSlug(in.Claim),
		SourceURL:        sourceURL,
		Fingerprint:      fingerprint,
		Claim:            in.Claim,
		Summary:          in.SummaryText(),
		Domain:           in.Domain,
		EvidenceLevel:    in.EvidenceLevel,
		RedFlags:         normalizeFlags(in.RedFlags),
		Explanation:      in.Explanation,
		CredibilityScore: ClampScore(*in.CredibilityScore),
		Verdict:          in.Verdict,
		CreatedAt:        createdAt,
		PublishedAt:      publishedAt,
	}

	stored, lostRace, err := s.insert(ctx, report)
	if err != nil {
		return PublishResult{}, err
	}
	if lostRace {
		return PublishResult{Slug: stored.Slug, Status: models.StatusAlreadyExists}, nil
	}

	s.invalidateFeed()
	s.log.Info("published", "slug", stored.Slug, "score", stored.CredibilityScore)
	return PublishResult{Slug: stored.Slug, Status: models.StatusPublished}, nil
}

// insert 写入报告。唯一约束冲突时先按 fingerprint 回查（并发发布同一 URL），
// 查不到说明是 slug 碰撞，换一个 slug 重试一次
func (s *ReportService) insert(ctx context.Context, report *models.Report) (stored *models.Report, lostRace bool, err error) {
	for attempt := 0; ; attempt++ {
		stored, err = s.store.Insert(ctx, report)
		if err == nil {
			return stored, false, nil
		}
		if !errors.Is(err, store.ErrConflict) {
			return nil, false, err
		}

		winner, lookupErr := s.store.FindByFingerprint(ctx, report.Fingerprint)
		if lookupErr == nil {
			s.log.Warn("publish race lost, returning existing report", "fingerprint", report.Fingerprint, "slug", winner.Slug)
			return winner, true, nil
		}
		if !errors.Is(lookupErr, store.ErrNotFound) {
			return nil, false, lookupErr
		}

		if attempt > 0 {
			return nil, false, fmt.Errorf("insert report %s: %w", report.Fingerprint, err)
		}
		s.log.Warn("slug collision, retrying", "slug", report.Slug)
		report.Slug = s.makeSlug(report.Claim)
	}
}

// validateInput 除 id、red_flags、created_at 外全部必填。
// 缺少分数时不能默认为 0，否则会被当成一个真实的低分评级
func validateInput(in *models.ReportInput) error {
	required := []struct {
		field string
		value string
	}{
		{"source_url", in.URL()},
		{"claim", in.Claim},
		{"summary", in.SummaryText()},
		{"domain", in.Domain},
		{"evidence_level", in.EvidenceLevel},
		{"explanation", in.Explanation},
		{"verdict", in.Verdict},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ValidationError{Field: r.field, Reason: "is required"}
		}
	}
	if in.CredibilityScore == nil {
		return &ValidationError{Field: "credibility_score", Reason: "is required"}
	}
	return nil
}

// ClampScore 将可信度分数限制在 [0, 100]
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func normalizeFlags(flags models.FlagList) []string {
	out := make([]string, 0, len(flags))
	return append(out, flags...)
}

var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999", // Python isoformat() 不带时区
	"2006-01-02 15:04:05.999999999",
}

func parseCreatedAt(raw string, fallback time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, &ValidationError{Field: "created_at", Reason: "must be an ISO 8601 timestamp"}
}
