// 指示: miu200521358
// Package mmath はボーン姿勢計算に使うベクトル演算を提供する。
package mmath

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// Epsilon は座標比較の許容誤差。
	Epsilon = 1e-8
)

// Vec3 は3次元ベクトルを表す。
type Vec3 struct {
	r3.Vec
}

var (
	// UnitX はX軸単位ベクトル。
	UnitX = Vec3{Vec: r3.Vec{X: 1}}
	// UnitY はY軸単位ベクトル。
	UnitY = Vec3{Vec: r3.Vec{Y: 1}}
	// UnitZ はZ軸単位ベクトル。
	UnitZ = Vec3{Vec: r3.Vec{Z: 1}}
	// UnitXNeg は-X軸単位ベクトル。
	UnitXNeg = Vec3{Vec: r3.Vec{X: -1}}
	// UnitYNeg は-Y軸単位ベクトル。
	UnitYNeg = Vec3{Vec: r3.Vec{Y: -1}}
	// UnitZNeg は-Z軸単位ベクトル。
	UnitZNeg = Vec3{Vec: r3.Vec{Z: -1}}
)

// NewVec3 は成分からベクトルを生成する。
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{Vec: r3.Vec{X: x, Y: y, Z: z}}
}

// Added は加算結果を返す。
func (v Vec3) Added(other Vec3) Vec3 {
	return Vec3{Vec: r3.Add(v.Vec, other.Vec)}
}

// Subed は減算結果を返す。
func (v Vec3) Subed(other Vec3) Vec3 {
	return Vec3{Vec: r3.Sub(v.Vec, other.Vec)}
}

// MuledScalar はスカラー倍を返す。
func (v Vec3) MuledScalar(s float64) Vec3 {
	return Vec3{Vec: r3.Scale(s, v.Vec)}
}

// DivedScalar はスカラー除算を返す。0除算時はゼロベクトルを返す。
func (v Vec3) DivedScalar(s float64) Vec3 {
	if math.Abs(s) <= Epsilon {
		return Vec3{}
	}
	return Vec3{Vec: r3.Scale(1.0/s, v.Vec)}
}

// Dot は内積を返す。
func (v Vec3) Dot(other Vec3) float64 {
	return r3.Dot(v.Vec, other.Vec)
}

// Cross は外積を返す。
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{Vec: r3.Cross(v.Vec, other.Vec)}
}

// Length は長さを返す。
func (v Vec3) Length() float64 {
	return r3.Norm(v.Vec)
}

// Distance は2点間距離を返す。
func (v Vec3) Distance(other Vec3) float64 {
	return r3.Norm(r3.Sub(v.Vec, other.Vec))
}

// IsZero はゼロベクトルか判定する。
func (v Vec3) IsZero() bool {
	return v.Length() <= Epsilon
}

// Normalized は単位ベクトルを返す。ゼロベクトルはそのまま返す。
func (v Vec3) Normalized() Vec3 {
	if v.IsZero() {
		return Vec3{}
	}
	return Vec3{Vec: r3.Unit(v.Vec)}
}

// Negated は符号反転ベクトルを返す。
func (v Vec3) Negated() Vec3 {
	return v.MuledScalar(-1)
}

// Lerp は線形補間結果を返す。
func (v Vec3) Lerp(other Vec3, t float64) Vec3 {
	return v.Added(other.Subed(v).MuledScalar(t))
}

// NearEquals は許容誤差内で一致するか判定する。
func (v Vec3) NearEquals(other Vec3, epsilon float64) bool {
	return math.Abs(v.X-other.X) <= epsilon &&
		math.Abs(v.Y-other.Y) <= epsilon &&
		math.Abs(v.Z-other.Z) <= epsilon
}

// String は表示用文字列を返す。
func (v Vec3) String() string {
	return fmt.Sprintf("[x=%.5f, y=%.5f, z=%.5f]", v.X, v.Y, v.Z)
}

// MeanVec3 は複数点の平均を返す。
func MeanVec3(points ...Vec3) Vec3 {
	if len(points) == 0 {
		return Vec3{}
	}
	sum := Vec3{}
	for _, p := range points {
		sum = sum.Added(p)
	}
	return sum.DivedScalar(float64(len(points)))
}
