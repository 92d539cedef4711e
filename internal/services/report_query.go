package services

import (
	"context"
	"fmt"

	"staywise/internal/models"
)

// GetReport 按 slug 精确查询。报告不可变，命中后长期缓存
func (s *ReportService) GetReport(ctx context.Context, slug string) (*models.ReportView, error) {
	cacheKey := reportCachePrefix + slug
	if s.cache != nil {
		if cached, ok := s.cache.Get(cacheKey).(models.ReportView); ok {
			view := cached.Clone()
			return &view, nil
		}
	}

	report, err := s.store.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	view := report.ToView()
	if s.cache != nil {
		s.cache.Set(cacheKey, view.Clone(), 0)
	}
	return &view, nil
}

// CheckDuplicate bot 在分析前预先检查该 URL 指纹是否已发布
func (s *ReportService) CheckDuplicate(ctx context.Context, fingerprint string) (*models.DuplicateView, error) {
	report, err := s.store.FindByFingerprint(ctx, fingerprint)
	if err != nil {
		return nil, err
	}
	return &models.DuplicateView{Slug: report.Slug}, nil
}

// GetFeed 最新发布列表。limit 上限 50，非正数取默认值 20；offset 不设上限
func (s *ReportService) GetFeed(ctx context.Context, limit, offset int) ([]models.FeedItemView, error) {
	limit, offset = ClampPage(limit, offset)

	cacheKey := fmt.Sprintf("%s%d:%d", feedCachePrefix, limit, offset)
	if s.cache != nil && s.feedTTL > 0 {
		if cached, ok := s.cache.Get(cacheKey).([]models.FeedItemView); ok {
			return append([]models.FeedItemView(nil), cached...), nil
		}
	}

	gen := s.feedGen.Load()
	reports, err := s.store.ListRecent(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	items := make([]models.FeedItemView, len(reports))
	for i := range reports {
		items[i] = reports[i].ToView().FeedItem()
	}

	if s.cache != nil && s.feedTTL > 0 {
		s.storeFeed(cacheKey, gen, items)
	}
	return items, nil
}

// Latest 最新 n 篇完整报告，供首页、sitemap 与 RSS 使用，不受 feed 上限约束
func (s *ReportService) Latest(ctx context.Context, n int) ([]models.ReportView, error) {
	reports, err := s.store.ListRecent(ctx, n, 0)
	if err != nil {
		return nil, err
	}
	views := make([]models.ReportView, len(reports))
	for i := range reports {
		views[i] = reports[i].ToView()
	}
	return views, nil
}

// Healthy 检查存储是否可用
func (s *ReportService) Healthy(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// ClampPage 规范化分页参数
func ClampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	if limit > MaxFeedLimit {
		limit = MaxFeedLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// storeFeed 只缓存读取期间没有发生发布的结果。
// 先写后查：若发布在写入后才递增 gen，它随后的 DeletePrefix 会清掉这条缓存
func (s *ReportService) storeFeed(key string, gen uint64, items []models.FeedItemView) {
	if s.feedGen.Load() != gen {
		s.log.Debug("feed changed during read, not caching", "key", key)
		return
	}
	s.cache.Set(key, append([]models.FeedItemView(nil), items...), s.feedTTL)
	if s.feedGen.Load() != gen {
		s.cache.Delete(key)
	}
}

// invalidateFeed 必须先递增 gen 再清缓存，与 storeFeed 的顺序配合
func (s *ReportService) invalidateFeed() {
	s.feedGen.Add(1)
	if s.cache != nil {
		s.cache.DeletePrefix(feedCachePrefix)
	}
}
