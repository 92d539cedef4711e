package services

import (
	"strings"

	"github.com/google/uuid"
)

const (
	slugMaxWords   = 6
	slugSuffixSize = 6
)

// MakeSlug 由 claim 生成短链接标识：
// 小写 -> 去掉 [a-z0-9 ] 以外的字符 -> 取前 6 个词 -> 用 - 连接 -> 追加 6 位随机十六进制
func MakeSlug(claim string) string {
	lowered := strings.ToLower(claim)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' ' {
			b.WriteRune(r)
		}
	}

	words := strings.Fields(b.String())
	if len(words) > slugMaxWords {
		words = words[:slugMaxWords]
	}

	// 没有可用词时只剩 "-" + 后缀
	return strings.Join(words, "-") + "-" + slugSuffix()
}

func slugSuffix() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:slugSuffixSize]
}
