// 指示: miu200521358
// Package naming はボーン名の生成規則と左右判定を提供する。
package naming

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// 役割接頭辞。互いに接頭辞関係にならないよう固定している。
const (
	PrefixControl         = "CTRL-"
	PrefixMechanism       = "MCH-"
	PrefixMechanismTarget = "MCH_TGT-"
	PrefixTweak           = "TWK-"
)

const ordinalDigits = 3

// rolePrefixes は判定順の役割接頭辞一覧。
var rolePrefixes = []string{
	PrefixMechanismTarget,
	PrefixMechanism,
	PrefixControl,
	PrefixTweak,
}

var ordinalPattern = regexp.MustCompile(`^(.*)\.(\d{3})$`)

// Prefixed は役割接頭辞付きの名前を返す。
func Prefixed(prefix, base string) string {
	return prefix + base
}

// SplitPrefix は役割接頭辞と基底名を分離する。接頭辞なしの場合は空文字を返す。
func SplitPrefix(name string) (string, string) {
	for _, prefix := range rolePrefixes {
		if strings.HasPrefix(name, prefix) {
			return prefix, strings.TrimPrefix(name, prefix)
		}
	}
	return "", name
}

// SplitOrdinal は末尾の .NNN 連番を分離する。
func SplitOrdinal(name string) (string, int, bool) {
	matches := ordinalPattern.FindStringSubmatch(name)
	if matches == nil {
		return name, 0, false
	}
	ordinal, err := strconv.Atoi(matches[2])
	if err != nil {
		return name, 0, false
	}
	return matches[1], ordinal, true
}

// WithOrdinal は連番付きの名前を返す。0 の場合は連番を付けない。
func WithOrdinal(stem string, ordinal int) string {
	if ordinal <= 0 {
		return stem
	}
	return fmt.Sprintf("%s.%0*d", stem, ordinalDigits, ordinal)
}

// UniqueName は exists で使用済みと判定されない名前を返す。
// 使用済みなら .NNN を繰り上げ、連番が無ければ .001 を付ける。
// 予約は行わないため、同じ状態に対しては常に同じ結果を返す。
func UniqueName(candidate string, exists func(string) bool) string {
	if exists == nil {
		return candidate
	}
	name := candidate
	for exists(name) {
		stem, ordinal, ok := SplitOrdinal(name)
		if ok {
			name = WithOrdinal(stem, ordinal+1)
			continue
		}
		name = WithOrdinal(name, 1)
	}
	return name
}
