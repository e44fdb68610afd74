// 指示: miu200521358
package model

// PropertyDef はコントロールに公開するカスタムプロパティを表す。
type PropertyDef struct {
	Name        string
	Default     float64
	Min         float64
	Max         float64
	Description string
}

// NewRateProperty は 0..1 範囲のプロパティを生成する。
func NewRateProperty(name string, def float64, description string) PropertyDef {
	return PropertyDef{Name: name, Default: def, Min: 0, Max: 1, Description: description}
}

// UIRow はパネルに並べるプロパティ行を表す。
type UIRow struct {
	Bone     string
	Property string
	Label    string
}

// パネル行ラベル。
const (
	LabelIkFk         = "IK/FK"
	LabelFkLimbFollow = "FK Limb Follow"
	LabelIkStretch    = "IK Stretch"
	LabelNeckFollow   = "Neck Follow"
	LabelHeadFollow   = "Head Follow"
	LabelMouthLock    = "Mouth Lock"
	LabelEyesFollow   = "Eyes Follow"
	LabelTongueFollow = "Tongue Follow"
	LabelChinFollow   = "Chin Follow"
	LabelRigPhy       = "Rig/Phy"
)

// 公開プロパティ名。
const (
	PropIkFkRate     = "ik_fk_rate"
	PropFkLimbFollow = "fk_limb_follow"
	PropIkStretch    = "ik_stretch"
	PropNeckFollow   = "neck_follow"
	PropHeadFollow   = "head_follow"
	PropMouthLock    = "mouth_lock"
	PropEyesFollow   = "eyes_follow"
	PropTongueFollow = "tongue_follow"
	PropChinFollow   = "chin_follow"
	PropRigPhy       = "rig_phy"
)
