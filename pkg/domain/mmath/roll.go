// 指示: miu200521358
package mmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// toMgl はmgl64ベクトルへ変換する。
func toMgl(v Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// fromMgl はmgl64ベクトルから変換する。
func fromMgl(v mgl64.Vec3) Vec3 {
	return NewVec3(v[0], v[1], v[2])
}

// BoneMatrix はボーン方向とロールから姿勢行列を返す。
// 行列のY列がボーン方向、Z列がロール適用後の上方向になる。
func BoneMatrix(direction Vec3, roll float64) mgl64.Mat3 {
	y := direction.Normalized()
	if y.IsZero() {
		return mgl64.Ident3()
	}
	align := mgl64.QuatBetweenVectors(mgl64.Vec3{0, 1, 0}, toMgl(y))
	twist := mgl64.QuatRotate(roll, toMgl(y))
	return twist.Mul(align).Normalize().Mat4().Mat3()
}

// BoneZAxis はボーン方向とロールからローカルZ軸を返す。
func BoneZAxis(direction Vec3, roll float64) Vec3 {
	return fromMgl(BoneMatrix(direction, roll).Col(2))
}

// RollFromZAxis は指定方向のボーンのZ軸が zAxis に最も近づくロールを返す。
func RollFromZAxis(direction Vec3, zAxis Vec3) float64 {
	y := direction.Normalized()
	if y.IsZero() {
		return 0
	}
	// ボーン方向に直交する平面へ射影する
	want := zAxis.Subed(y.MuledScalar(zAxis.Dot(y))).Normalized()
	if want.IsZero() {
		return 0
	}
	base := BoneZAxis(y, 0)
	return math.Atan2(base.Cross(want).Dot(y), base.Dot(want))
}

// AlignRoll は元ボーンの上方向を保ったまま新方向へ合わせたロールを返す。
func AlignRoll(srcDirection Vec3, srcRoll float64, dstDirection Vec3) float64 {
	return RollFromZAxis(dstDirection, BoneZAxis(srcDirection, srcRoll))
}

// DegToRad は度をラジアンへ変換する。
func DegToRad(degree float64) float64 {
	return mgl64.DegToRad(degree)
}

// RadToDeg はラジアンを度へ変換する。
func RadToDeg(radian float64) float64 {
	return mgl64.RadToDeg(radian)
}
