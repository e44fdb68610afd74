// 指示: miu200521358
package naming

import (
	"regexp"
	"sort"
	"strings"
)

// Side はボーン名から判定した左右を表す。
type Side int

const (
	// SIDE_NONE は左右なし。
	SIDE_NONE Side = iota
	// SIDE_LEFT は左。
	SIDE_LEFT
	// SIDE_RIGHT は右。
	SIDE_RIGHT
)

// String は左右の表記を返す。
func (s Side) String() string {
	switch s {
	case SIDE_LEFT:
		return "L"
	case SIDE_RIGHT:
		return "R"
	default:
		return ""
	}
}

// Mirror は反対側を返す。
func (s Side) Mirror() Side {
	switch s {
	case SIDE_LEFT:
		return SIDE_RIGHT
	case SIDE_RIGHT:
		return SIDE_LEFT
	default:
		return SIDE_NONE
	}
}

// sidePattern は末尾の L/R と任意の .NNN に一致する。区切り文字は省略できる。
var sidePattern = regexp.MustCompile(`^(.+?)([._\-]?)([LR])((?:\.\d{3})?)$`)

// sideParts は左右付き名前の分解結果を表す。
type sideParts struct {
	Stem      string
	Separator string
	Side      Side
	Ordinal   string
}

// parseSide は名前末尾の左右表記を分解する。
func parseSide(name string) (sideParts, bool) {
	matches := sidePattern.FindStringSubmatch(name)
	if matches == nil {
		return sideParts{Stem: name}, false
	}
	side := SIDE_LEFT
	if matches[3] == "R" {
		side = SIDE_RIGHT
	}
	return sideParts{
		Stem:      matches[1],
		Separator: matches[2],
		Side:      side,
		Ordinal:   matches[4],
	}, true
}

// String は分解結果を名前へ戻す。
func (p sideParts) String() string {
	if p.Side == SIDE_NONE {
		return p.Stem + p.Ordinal
	}
	return p.Stem + p.Separator + p.Side.String() + p.Ordinal
}

// SideOf は名前の左右を返す。
func SideOf(name string) Side {
	_, base := SplitPrefix(name)
	parts, ok := parseSide(base)
	if !ok {
		return SIDE_NONE
	}
	return parts.Side
}

// MirrorName は左右を入れ替えた名前を返す。左右表記が無い場合は false を返す。
func MirrorName(name string) (string, bool) {
	prefix, base := SplitPrefix(name)
	parts, ok := parseSide(base)
	if !ok {
		return name, false
	}
	parts.Side = parts.Side.Mirror()
	return prefix + parts.String(), true
}

// StripSide は左右表記を除いた名前を返す。
func StripSide(name string) string {
	prefix, base := SplitPrefix(name)
	parts, ok := parseSide(base)
	if !ok {
		return name
	}
	parts.Side = SIDE_NONE
	return prefix + parts.String()
}

// WithTag は左右表記と連番の手前へ用途タグを差し込んだ名前を返す。
// 例: upper_arm.L -> upper_arm_fk.L
func WithTag(name, tag string) string {
	if tag == "" {
		return name
	}
	if parts, ok := parseSide(name); ok {
		parts.Stem = parts.Stem + "_" + tag
		return parts.String()
	}
	if stem, ordinal, ok := SplitOrdinal(name); ok {
		return WithOrdinal(stem+"_"+tag, ordinal)
	}
	return name + "_" + tag
}

// StripOrdinal は末尾連番を除いた名前を返す。左右表記は保持する。
func StripOrdinal(name string) string {
	if parts, ok := parseSide(name); ok {
		parts.Ordinal = ""
		if stem, _, ok := SplitOrdinal(parts.Stem); ok {
			parts.Stem = stem
		}
		return parts.String()
	}
	stem, _, _ := SplitOrdinal(name)
	return stem
}

// BaseStem は最初の "." までの語幹を返す。
func BaseStem(name string) string {
	_, base := SplitPrefix(name)
	if idx := strings.Index(base, "."); idx > 0 {
		return base[:idx]
	}
	return base
}

// SplitSymmetric は名前集合を左右へ分割する。どちらにも該当しない名前は除外する。
// 返却値はいずれも名前順に整列する。
func SplitSymmetric(names []string) ([]string, []string) {
	left := make([]string, 0, len(names)/2)
	right := make([]string, 0, len(names)/2)
	for _, name := range names {
		switch SideOf(name) {
		case SIDE_LEFT:
			left = append(left, name)
		case SIDE_RIGHT:
			right = append(right, name)
		}
	}
	sort.Strings(left)
	sort.Strings(right)
	return left, right
}

// WithSide は語幹へ左右表記を付けた名前を返す。SIDE_NONE の場合は語幹のまま。
func WithSide(stem string, side Side) string {
	if side == SIDE_NONE {
		return stem
	}
	return stem + "." + side.String()
}
