package models

import (
	"time"

	"gorm.io/datatypes"
)

// Report 已发布的分析报告，只追加，不修改不删除
type Report struct {
	RowID            uint                        `gorm:"column:row_id;primaryKey;autoIncrement" json:"-"`
	ReportID         string                      `gorm:"column:report_id;size:128;index" json:"id"` // 由 bot 提供，原样保存
	Slug             string                      `gorm:"uniqueIndex;size:128;not null" json:"slug"`
	SourceURL        string                      `gorm:"type:text;not null" json:"source_url"`
	Fingerprint      string                      `gorm:"uniqueIndex;size:16;not null" json:"fingerprint"`
	Claim            string                      `gorm:"type:text;not null" json:"claim"`
	Summary          string                      `gorm:"type:text" json:"summary"`
	Domain           string                      `gorm:"size:100" json:"domain"`
	EvidenceLevel    string                      `gorm:"size:50" json:"evidence_level"`
	RedFlags         datatypes.JSONSlice[string] `json:"red_flags"`
	Explanation      string                      `gorm:"type:text" json:"explanation"`
	CredibilityScore int                         `gorm:"not null;default:0" json:"credibility_score"`
	Verdict          string                      `gorm:"size:100" json:"verdict"`

	// 分析完成时间
	CreatedAt   time.Time `gorm:"autoCreateTime:false;not null" json:"created_at"`
	// 入库时间，feed 排序依据
	PublishedAt time.Time `gorm:"autoCreateTime:false;not null;index" json:"published_at"`
}
