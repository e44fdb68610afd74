// 指示: miu200521358
package model

import (
	"fmt"
	"strings"
)

// FeatureKind はメタリグのタグが指定する機能種別を表す。
type FeatureKind string

const (
	FEATURE_LIMB     FeatureKind = "limb"
	FEATURE_TORSO    FeatureKind = "torso"
	FEATURE_FINGER   FeatureKind = "finger"
	FEATURE_THUMB    FeatureKind = "thumb"
	FEATURE_TENTACLE FeatureKind = "tentacle"
	FEATURE_RING     FeatureKind = "ring"
	FEATURE_PALM     FeatureKind = "palm"
	FEATURE_FACE     FeatureKind = "face"
)

// FeatureKinds は既知の機能種別一覧。
var FeatureKinds = []FeatureKind{
	FEATURE_LIMB,
	FEATURE_TORSO,
	FEATURE_FINGER,
	FEATURE_THUMB,
	FEATURE_TENTACLE,
	FEATURE_RING,
	FEATURE_PALM,
	FEATURE_FACE,
}

// featureAliases は旧来のタグ名から機能種別への対応を保持する。
var featureAliases = map[string]FeatureKind{
	"limb":              FEATURE_LIMB,
	"limbs":             FEATURE_LIMB,
	"super_limb":        FEATURE_LIMB,
	"torso":             FEATURE_TORSO,
	"spine":             FEATURE_TORSO,
	"super_torso":       FEATURE_TORSO,
	"super_torso_turbo": FEATURE_TORSO,
	"finger":            FEATURE_FINGER,
	"super_finger":      FEATURE_FINGER,
	"simple_finger":     FEATURE_FINGER,
	"thumb":             FEATURE_THUMB,
	"super_thumb":       FEATURE_THUMB,
	"tentacle":          FEATURE_TENTACLE,
	"simple_tentacle":   FEATURE_TENTACLE,
	"ring":              FEATURE_RING,
	"super_ring":        FEATURE_RING,
	"palm":              FEATURE_PALM,
	"super_palm":        FEATURE_PALM,
	"face":              FEATURE_FACE,
	"super_face":        FEATURE_FACE,
}

// ParseFeatureKind はタグ文字列を機能種別へ変換する。
// "pitchipoy.super_face" のような名前空間付きタグは末尾要素で判定する。
func ParseFeatureKind(tag string) (FeatureKind, error) {
	normalized := strings.ToLower(strings.TrimSpace(tag))
	if normalized == "" {
		return "", fmt.Errorf("機能タグが空です")
	}
	if kind, ok := featureAliases[normalized]; ok {
		return kind, nil
	}
	if idx := strings.LastIndex(normalized, "."); idx >= 0 {
		if kind, ok := featureAliases[normalized[idx+1:]]; ok {
			return kind, nil
		}
	}
	return "", fmt.Errorf("未対応の機能タグです: %s", tag)
}

// String は機能種別名を返す。
func (k FeatureKind) String() string {
	return string(k)
}
