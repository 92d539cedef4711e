package utils

import "strings"

// VerdictClass 根据结论文本返回颜色等级
func VerdictClass(verdict string) string {
	v := strings.ToLower(verdict)
	if strings.Contains(v, "true") || strings.Contains(v, "green") {
		return "green"
	}
	if strings.Contains(v, "mislead") || strings.Contains(v, "red") {
		return "red"
	}
	return "yellow"
}

// ScoreClass 可信度分数的颜色等级：>=70 green，>=40 yellow，其余 red
func ScoreClass(score int) string {
	switch {
	case score >= 70:
		return "green"
	case score >= 40:
		return "yellow"
	default:
		return "red"
	}
}
