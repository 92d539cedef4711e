package services

import (
	"crypto/sha256"
	"encoding/hex"
)

// FingerprintLength 与 bot 端保持一致，不可修改
const FingerprintLength = 16

// Fingerprint 计算 URL 的去重指纹：sha256 十六进制前 16 位。
// URL 不做任何规范化（大小写、结尾斜杠、查询参数都会产生不同指纹）
func Fingerprint(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])[:FingerprintLength]
}
