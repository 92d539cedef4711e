package store

import (
	"context"
	"errors"
	"strings"

	"staywise/internal/models"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("report not found")
	ErrConflict = errors.New("report already exists")
)

// ReportStore 报告的持久化接口。只追加：没有更新和删除
type ReportStore interface {
	// Insert 写入新报告，fingerprint 或 slug 已存在时返回 ErrConflict
	Insert(ctx context.Context, report *models.Report) (*models.Report, error)
	FindBySlug(ctx context.Context, slug string) (*models.Report, error)
	FindByFingerprint(ctx context.Context, fingerprint string) (*models.Report, error)
	// ListRecent 按 published_at 倒序，相同时间按写入顺序倒序
	ListRecent(ctx context.Context, limit, offset int) ([]models.Report, error)
	Ping(ctx context.Context) error
}

type GormReportStore struct {
	db *gorm.DB
}

func NewGormReportStore(db *gorm.DB) *GormReportStore {
	return &GormReportStore{db: db}
}

func (s *GormReportStore) Insert(ctx context.Context, report *models.Report) (*models.Report, error) {
	if report.RedFlags == nil {
		report.RedFlags = []string{}
	}
	if err := s.db.WithContext(ctx).Create(report).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return report, nil
}

func (s *GormReportStore) FindBySlug(ctx context.Context, slug string) (*models.Report, error) {
	return s.findOne(ctx, "slug = ?", slug)
}

func (s *GormReportStore) FindByFingerprint(ctx context.Context, fingerprint string) (*models.Report, error) {
	return s.findOne(ctx, "fingerprint = ?", fingerprint)
}

func (s *GormReportStore) findOne(ctx context.Context, query string, arg string) (*models.Report, error) {
	var report models.Report
	err := s.db.WithContext(ctx).Where(query, arg).Take(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *GormReportStore) ListRecent(ctx context.Context, limit, offset int) ([]models.Report, error) {
	if limit <= 0 {
		return []models.Report{}, nil
	}
	reports := make([]models.Report, 0, limit)
	if offset < 0 {
		offset = 0
	}
	err := s.db.WithContext(ctx).
		Order("published_at DESC, row_id DESC").
		Limit(limit).
		Offset(offset).
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *GormReportStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
