// file: utils/flag.go
package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"github.com/google/uuid"
	"regexp"
	"strings"
)

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var flagPattern = regexp.MustCompile(`^secXplore\{[a-zA-Z0-9_\-@!#$%^&*()+=]+\}$`)

// SecureCompareFlag 恒定结构比较提交值与正解。
// 两边先做 SHA-256 再用 subtle.ConstantTimeCompare，比较耗时与
// 前缀匹配长度、两边字符串长度均无关，防止计时侧信道逐字符恢复 Flag。
func SecureCompareFlag(canonical, submitted string) bool {
	ch := sha256.Sum256([]byte(canonical))
	sh := sha256.Sum256([]byte(submitted))
	return subtle.ConstantTimeCompare(ch[:], sh[:]) == 1
}

// ValidateFlagFormat 校验提交值是否符合 secXplore{...} 格式
func ValidateFlagFormat(flag string) bool {
	return flagPattern.MatchString(flag)
}

// GenerateDynamicFlag 生成随机 Flag，管理员建题未提供正解时使用
func GenerateDynamicFlag() string {
	part1 := strings.Replace(uuid.New().String(), "-", "", -1)[:12]
	part2 := strings.Replace(uuid.New().String(), "-", "", -1)[:12]
	part3 := strings.Replace(uuid.New().String(), "-", "", -1)[:12]
	return fmt.Sprintf("secXplore{%s-%s-%s}", part1, part2, part3)
}

// GenerateChallengeCode 生成题目短码（如 "WEB-3F8A2C"），取 UUID 的高熵字节映射到字符集
func GenerateChallengeCode(prefix string, length int) string {
	raw := uuid.New()
	var sb strings.Builder
	sb.Grow(len(prefix) + 1 + length)
	sb.WriteString(strings.ToUpper(prefix))
	sb.WriteByte('-')
	for i := 0; i < length; i++ {
		sb.WriteByte(codeCharset[int(raw[i%len(raw)])%len(codeCharset)])
	}
	return sb.String()
}
