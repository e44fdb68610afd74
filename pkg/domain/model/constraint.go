// 指示: miu200521358
package model

import "github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/mmath"

// ConstraintType はコンストレイント種別を表す。
type ConstraintType string

const (
	CONSTRAINT_COPY_TRANSFORMS ConstraintType = "COPY_TRANSFORMS"
	CONSTRAINT_COPY_ROTATION   ConstraintType = "COPY_ROTATION"
	CONSTRAINT_COPY_LOCATION   ConstraintType = "COPY_LOCATION"
	CONSTRAINT_COPY_SCALE      ConstraintType = "COPY_SCALE"
	CONSTRAINT_DAMPED_TRACK    ConstraintType = "DAMPED_TRACK"
	CONSTRAINT_STRETCH_TO      ConstraintType = "STRETCH_TO"
	CONSTRAINT_IK              ConstraintType = "IK"
	CONSTRAINT_LIMIT_ROTATION  ConstraintType = "LIMIT_ROTATION"
	CONSTRAINT_MAINTAIN_VOLUME ConstraintType = "MAINTAIN_VOLUME"
)

// RequiresTarget はターゲットボーン必須の種別か判定する。
func (t ConstraintType) RequiresTarget() bool {
	switch t {
	case CONSTRAINT_LIMIT_ROTATION, CONSTRAINT_MAINTAIN_VOLUME:
		return false
	default:
		return true
	}
}

// Space はコンストレイント評価空間を表す。
type Space string

const (
	SPACE_WORLD             Space = "WORLD"
	SPACE_POSE              Space = "POSE"
	SPACE_LOCAL             Space = "LOCAL"
	SPACE_LOCAL_WITH_PARENT Space = "LOCAL_WITH_PARENT"
)

// AxisMask は軸ごとの有効フラグを表す。
type AxisMask struct {
	X bool
	Y bool
	Z bool
}

// AllAxes は全軸有効のマスク。
var AllAxes = AxisMask{X: true, Y: true, Z: true}

// Count は有効軸数を返す。
func (m AxisMask) Count() int {
	count := 0
	for _, on := range []bool{m.X, m.Y, m.Z} {
		if on {
			count++
		}
	}
	return count
}

// RotationLimit は回転制限の範囲を表す。角度はラジアン。
type RotationLimit struct {
	Use AxisMask
	Min mmath.Vec3
	Max mmath.Vec3
}

// Constraint はボーンに付与するコンストレイントを表す。
type Constraint struct {
	Name        string
	Type        ConstraintType
	Target      BoneIndex
	Influence   float64
	OwnerSpace  Space
	TargetSpace Space
	UseOffset   bool
	Axes        AxisMask
	Invert      AxisMask
	HeadTail    float64
	ChainCount  int
	UseStretch  bool
	PoleTarget  BoneIndex
	RestLength  float64
	Limit       RotationLimit
	TrackAxis   string
	VolumeMode  string
}

// NewConstraint は既定値を埋めたコンストレイントを生成する。
func NewConstraint(kind ConstraintType, target BoneIndex) Constraint {
	return Constraint{
		Name:        string(kind),
		Type:        kind,
		Target:      target,
		Influence:   1.0,
		OwnerSpace:  SPACE_WORLD,
		TargetSpace: SPACE_WORLD,
		Axes:        AllAxes,
		PoleTarget:  NoBone,
		UseStretch:  true,
		TrackAxis:   "TRACK_Y",
	}
}

// HasTarget はターゲットが設定済みか判定する。
func (c Constraint) HasTarget() bool {
	return c.Target.IsValid()
}
