// 指示: miu200521358
package mrig

import (
	"fmt"

	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/model"
)

// ConstraintOption はコンストレイント値を調整する。
type ConstraintOption func(*model.Constraint)

// WithInfluence は影響度を設定する。
func WithInfluence(influence float64) ConstraintOption {
	return func(c *model.Constraint) {
		c.Influence = influence
	}
}

// WithSpaces は所有側と対象側の評価空間を設定する。
func WithSpaces(owner, target model.Space) ConstraintOption {
	return func(c *model.Constraint) {
		c.OwnerSpace = owner
		c.TargetSpace = target
	}
}

// WithLocalSpace は両側をローカル空間にする。
func WithLocalSpace() ConstraintOption {
	return WithSpaces(model.SPACE_LOCAL, model.SPACE_LOCAL)
}

// WithOffset はオフセット加算を有効にする。
func WithOffset() ConstraintOption {
	return func(c *model.Constraint) {
		c.UseOffset = true
	}
}

// WithAxes は有効軸を設定する。
func WithAxes(axes model.AxisMask) ConstraintOption {
	return func(c *model.Constraint) {
		c.Axes = axes
	}
}

// WithInvert は反転軸を設定する。
func WithInvert(invert model.AxisMask) ConstraintOption {
	return func(c *model.Constraint) {
		c.Invert = invert
	}
}

// WithHeadTail は対象ボーン上の参照位置を設定する。
func WithHeadTail(headTail float64) ConstraintOption {
	return func(c *model.Constraint) {
		c.HeadTail = headTail
	}
}

// WithName は名前を設定する。
func WithName(name string) ConstraintOption {
	return func(c *model.Constraint) {
		c.Name = name
	}
}

// ConstraintBuilder はコンストレイントを順に付与し、最初の失敗を保持する。
type ConstraintBuilder struct {
	sk     *model.Skeleton
	errors []error
}

// NewConstraintBuilder は配線器を生成する。
func NewConstraintBuilder(sk *model.Skeleton) *ConstraintBuilder {
	return &ConstraintBuilder{sk: sk}
}

// Add はコンストレイントを付与し、所有ボーン内の番号を返す。失敗時は -1。
func (b *ConstraintBuilder) Add(owner model.BoneIndex, constraint model.Constraint) int {
	index, err := b.sk.AddConstraint(owner, constraint)
	if err != nil {
		b.errors = append(b.errors, fmt.Errorf("コンストレイント付与に失敗しました: %s: %w", b.sk.NameOf(owner), err))
		return -1
	}
	return index
}

func (b *ConstraintBuilder) add(kind model.ConstraintType, owner, target model.BoneIndex, options []ConstraintOption) int {
	constraint := model.NewConstraint(kind, target)
	for _, option := range options {
		option(&constraint)
	}
	return b.Add(owner, constraint)
}

// CopyTransforms は COPY_TRANSFORMS を付与する。
func (b *ConstraintBuilder) CopyTransforms(owner, target model.BoneIndex, options ...ConstraintOption) int {
	return b.add(model.CONSTRAINT_COPY_TRANSFORMS, owner, target, options)
}

// CopyRotation は COPY_ROTATION を付与する。
func (b *ConstraintBuilder) CopyRotation(owner, target model.BoneIndex, options ...ConstraintOption) int {
	return b.add(model.CONSTRAINT_COPY_ROTATION, owner, target, options)
}

// CopyLocation は COPY_LOCATION を付与する。
func (b *ConstraintBuilder) CopyLocation(owner, target model.BoneIndex, options ...ConstraintOption) int {
	return b.add(model.CONSTRAINT_COPY_LOCATION, owner, target, options)
}

// CopyScale は COPY_SCALE を付与する。
func (b *ConstraintBuilder) CopyScale(owner, target model.BoneIndex, options ...ConstraintOption) int {
	return b.add(model.CONSTRAINT_COPY_SCALE, owner, target, options)
}

// DampedTrack は DAMPED_TRACK を付与する。
func (b *ConstraintBuilder) DampedTrack(owner, target model.BoneIndex, options ...ConstraintOption) int {
	return b.add(model.CONSTRAINT_DAMPED_TRACK, owner, target, options)
}

// StretchTo は STRETCH_TO を付与する。休止長は所有ボーンの長さ。
func (b *ConstraintBuilder) StretchTo(owner, target model.BoneIndex, options ...ConstraintOption) int {
	if bone, err := b.sk.Get(owner); err == nil {
		options = append([]ConstraintOption{func(c *model.Constraint) {
			c.RestLength = bone.Length()
			c.VolumeMode = "VOLUME_XZX"
		}}, options...)
	}
	return b.add(model.CONSTRAINT_STRETCH_TO, owner, target, options)
}

// IK は IK を付与する。pole が NoBone の場合はポール無し。
func (b *ConstraintBuilder) IK(owner, target model.BoneIndex, chainCount int, pole model.BoneIndex, options ...ConstraintOption) int {
	options = append([]ConstraintOption{func(c *model.Constraint) {
		c.ChainCount = chainCount
		c.PoleTarget = pole
	}}, options...)
	return b.add(model.CONSTRAINT_IK, owner, target, options)
}

// LimitRotation は回転制限を付与する。
func (b *ConstraintBuilder) LimitRotation(owner model.BoneIndex, limit model.RotationLimit, options ...ConstraintOption) int {
	options = append([]ConstraintOption{func(c *model.Constraint) {
		c.Limit = limit
		c.OwnerSpace = model.SPACE_LOCAL
	}}, options...)
	return b.add(model.CONSTRAINT_LIMIT_ROTATION, owner, model.NoBone, options)
}

// MaintainVolume は体積維持を付与する。
func (b *ConstraintBuilder) MaintainVolume(owner model.BoneIndex, options ...ConstraintOption) int {
	options = append([]ConstraintOption{func(c *model.Constraint) {
		c.OwnerSpace = model.SPACE_LOCAL
		c.VolumeMode = "STRICT"
	}}, options...)
	return b.add(model.CONSTRAINT_MAINTAIN_VOLUME, owner, model.NoBone, options)
}

// Err は記録済みの失敗を返す。
func (b *ConstraintBuilder) Err() error {
	return joinErrors(b.errors)
}
