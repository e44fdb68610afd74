// 指示: miu200521358
package io_rig

import (
	"strings"

	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/model"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/naming"
)

// 表示形状名。
const (
	WidgetCircle   = "circle"
	WidgetCube     = "cube"
	WidgetSphere   = "sphere"
	WidgetDiamond  = "diamond"
	WidgetArrow    = "arrow"
	WidgetCross    = "cross"
	WidgetEyeFrame = "eye_frame"
)

// widgetRule は語幹の末尾か完全一致で形状を決める規則を表す。
type widgetRule struct {
	suffix string
	exact  bool
	widget string
}

// controlWidgetRules は上から順に評価する。
var controlWidgetRules = []widgetRule{
	{suffix: "torso", exact: true, widget: WidgetCross},
	{suffix: "eyes", exact: true, widget: WidgetEyeFrame},
	{suffix: "_ik", widget: WidgetCube},
	{suffix: "_master", widget: WidgetDiamond},
	{suffix: "_fk", widget: WidgetCircle},
}

// defaultWidgets は規則に該当しないコントロールの機能別形状。
var defaultWidgets = map[model.FeatureKind]string{
	model.FEATURE_LIMB:     WidgetCircle,
	model.FEATURE_TORSO:    WidgetCircle,
	model.FEATURE_FINGER:   WidgetArrow,
	model.FEATURE_THUMB:    WidgetArrow,
	model.FEATURE_TENTACLE: WidgetCircle,
	model.FEATURE_RING:     WidgetSphere,
	model.FEATURE_PALM:     WidgetDiamond,
	model.FEATURE_FACE:     WidgetCircle,
}

// WidgetAssigner はボーン名と役割から表示形状名を決める。
type WidgetAssigner struct{}

// NewWidgetAssigner は WidgetAssigner を生成する。
func NewWidgetAssigner() *WidgetAssigner {
	return &WidgetAssigner{}
}

// AssignWidget はコントロールとツイークに形状名を返す。他の役割は空文字。
func (a *WidgetAssigner) AssignWidget(bone *model.Bone, kind model.FeatureKind) string {
	if bone == nil {
		return ""
	}
	switch bone.Role {
	case model.ROLE_TWEAK:
		return WidgetSphere
	case model.ROLE_CONTROL:
	default:
		return ""
	}
	stem := naming.BaseStem(bone.Name)
	for _, rule := range controlWidgetRules {
		if rule.exact && stem == rule.suffix {
			return rule.widget
		}
		if !rule.exact && strings.HasSuffix(stem, rule.suffix) {
			return rule.widget
		}
	}
	if widget, ok := defaultWidgets[kind]; ok {
		return widget
	}
	return WidgetCircle
}
