// 指示: miu200521358
package mrig

import (
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/mmath"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/model"
	"gonum.org/v1/gonum/floats"
)

// 操作ハンドル長の除数。チェーン全長をこの値で割った長さにする。
const (
	PivotLengthDivisor = 2.5
	ChestLengthDivisor = 3.0
	HipsLengthDivisor  = 4.0
	NeckLengthDivisor  = 10.0
)

// 機構ボーンの縮小率。
const (
	QuarterLength = 0.25
	HalfLength    = 0.5
)

// Midpoint は2点の中点を返す。
func Midpoint(a, b mmath.Vec3) mmath.Vec3 {
	return a.Lerp(b, 0.5)
}

// OrientExtension はヘッドから軸方向へ length 伸ばした位置にテールを置く。
// reverse の場合は元テールを新ヘッドにしてから伸ばす。
func OrientExtension(bone *model.Bone, axis mmath.Vec3, length float64, reverse bool) {
	if bone == nil {
		return
	}
	if reverse {
		bone.Head = bone.Tail
	}
	bone.Tail = bone.Head.Added(axis.Normalized().MuledScalar(length))
}

// ShrinkLength はヘッドを保ったまま長さを factor 倍にする。
func ShrinkLength(bone *model.Bone, factor float64) {
	if bone == nil {
		return
	}
	bone.Tail = bone.Head.Added(bone.Vector().MuledScalar(factor))
}

// SetLength はヘッドと方向を保ったまま長さを設定する。方向が無い場合は Y 軸を使う。
func SetLength(bone *model.Bone, length float64) {
	if bone == nil {
		return
	}
	direction := bone.Direction()
	if direction.IsZero() {
		direction = mmath.UnitY
	}
	bone.Tail = bone.Head.Added(direction.MuledScalar(length))
}

// MoveHead はベクトルを保ったままヘッドを移動する。
func MoveHead(bone *model.Bone, head mmath.Vec3) {
	if bone == nil {
		return
	}
	vector := bone.Vector()
	bone.Head = head
	bone.Tail = head.Added(vector)
}

// Span はヘッドとテールを指定し、ロールを元ボーンの向きに揃える。
func Span(bone *model.Bone, head, tail mmath.Vec3, rollSource *model.Bone) {
	if bone == nil {
		return
	}
	bone.Head = head
	bone.Tail = tail
	if rollSource != nil {
		bone.Roll = mmath.AlignRoll(rollSource.Direction(), rollSource.Roll, bone.Direction())
	}
}

// Reverse はヘッドとテールを入れ替える。
func Reverse(bone *model.Bone) {
	if bone == nil {
		return
	}
	bone.Head, bone.Tail = bone.Tail, bone.Head
}

// ChainLength はチェーン全長を返す。
func ChainLength(sk *model.Skeleton, chain []model.BoneIndex) float64 {
	return floats.Sum(BoneLengths(sk, chain))
}

// BoneLengths はチェーン各ボーンの長さを返す。
func BoneLengths(sk *model.Skeleton, chain []model.BoneIndex) []float64 {
	lengths := make([]float64, 0, len(chain))
	for _, index := range chain {
		bone, err := sk.Get(index)
		if err != nil {
			lengths = append(lengths, 0)
			continue
		}
		lengths = append(lengths, bone.Length())
	}
	return lengths
}

// Centroid はボーンヘッドの重心を返す。
func Centroid(sk *model.Skeleton, bones []model.BoneIndex) mmath.Vec3 {
	points := make([]mmath.Vec3, 0, len(bones))
	for _, index := range bones {
		if bone, err := sk.Get(index); err == nil {
			points = append(points, bone.Head)
		}
	}
	return mmath.MeanVec3(points...)
}
