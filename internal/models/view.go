package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const (
	StatusPublished     = "published"
	StatusAlreadyExists = "already_exists"
)

// FlagList 接受 JSON 数组、单个字符串或 null
type FlagList []string

func (f *FlagList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = FlagList{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlagList{s}
		return nil
	case '[':
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("red_flags must be a list of strings: %w", err)
		}
		*f = FlagList(list)
		return nil
	}
	return fmt.Errorf("red_flags must be a string or a list of strings")
}

// ReportInput bot 提交的未信任数据
// reel_url / transcript_summary 为旧版 bot 字段，兼容保留
type ReportInput struct {
	ID                string   `json:"id"`
	SourceURL         string   `json:"source_url"`
	ReelURL           string   `json:"reel_url"`
	Claim             string   `json:"claim"`
	Summary           string   `json:"summary"`
	TranscriptSummary string   `json:"transcript_summary"`
	Domain            string   `json:"domain"`
	EvidenceLevel     string   `json:"evidence_level"`
	RedFlags          FlagList `json:"red_flags"`
	Explanation       string   `json:"explanation"`
	CredibilityScore  *int     `json:"credibility_score"` // nil 表示未提交
	Verdict           string   `json:"verdict"`
	CreatedAt         string   `json:"created_at"` // ISO 8601
}

// URL 返回提交的视频地址，source_url 优先
func (in *ReportInput) URL() string {
	if in.SourceURL != "" {
		return in.SourceURL
	}
	return in.ReelURL
}

func (in *ReportInput) SummaryText() string {
	if in.Summary != "" {
		return in.Summary
	}
	return in.TranscriptSummary
}

// ReportView GET /api/report/:slug 的完整输出
type ReportView struct {
	ID               string    `json:"id"`
	Slug             string    `json:"slug"`
	SourceURL        string    `json:"source_url"`
	Fingerprint      string    `json:"fingerprint"`
	Claim            string    `json:"claim"`
	Summary          string    `json:"summary"`
	Domain           string    `json:"domain"`
	EvidenceLevel    string    `json:"evidence_level"`
	RedFlags         []string  `json:"red_flags"`
	Explanation      string    `json:"explanation"`
	CredibilityScore int       `json:"credibility_score"`
	Verdict          string    `json:"verdict"`
	CreatedAt        time.Time `json:"created_at"`
	PublishedAt      time.Time `json:"published_at"`
}

// FeedItemView feed 列表中的轻量条目
type FeedItemView struct {
	Slug             string    `json:"slug"`
	Claim            string    `json:"claim"`
	Domain           string    `json:"domain"`
	CredibilityScore int       `json:"credibility_score"`
	Verdict          string    `json:"verdict"`
	PublishedAt      time.Time `json:"published_at"`
}

type PublishResponse struct {
	Slug    string `json:"slug"`
	Message string `json:"message"` // "published" | "already_exists"
}

type DuplicateView struct {
	Slug string `json:"slug"`
}

// ToView 是实体到对外视图的唯一映射
func (r *Report) ToView() ReportView {
	flags := make([]string, len(r.RedFlags))
	copy(flags, r.RedFlags)
	return ReportView{
		ID:               r.ReportID,
		Slug:             r.Slug,
		SourceURL:        r.SourceURL,
		Fingerprint:      r.Fingerprint,
		Claim:            r.Claim,
		Summary:          r.Summary,
		Domain:           r.Domain,
		EvidenceLevel:    r.EvidenceLevel,
		RedFlags:         flags,
		Explanation:      r.Explanation,
		CredibilityScore: r.CredibilityScore,
		Verdict:          r.Verdict,
		CreatedAt:        r.CreatedAt,
		PublishedAt:      r.PublishedAt,
	}
}

// Clone 深拷贝，red_flags 不与原视图共享
func (v ReportView) Clone() ReportView {
	flags := make([]string, len(v.RedFlags))
	copy(flags, v.RedFlags)
	v.RedFlags = flags
	return v
}

// FeedItem 从完整视图裁剪出 feed 字段
func (v ReportView) FeedItem() FeedItemView {
	return FeedItemView{
		Slug:             v.Slug,
		Claim:            v.Claim,
		Domain:           v.Domain,
		CredibilityScore: v.CredibilityScore,
		Verdict:          v.Verdict,
		PublishedAt:      v.PublishedAt,
	}
}
