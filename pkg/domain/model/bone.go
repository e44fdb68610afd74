// 指示: miu200521358
package model

import "github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/mmath"

// BoneIndex はスケルトン内のボーン番号を表す。
type BoneIndex int

// NoBone はボーン未指定を表す。
const NoBone BoneIndex = -1

// IsValid は有効な番号か判定する。
func (i BoneIndex) IsValid() bool {
	return i >= 0
}

// LayerCount はレイヤーマスクのスロット数。
const LayerCount = 32

// Layers は表示レイヤーのマスクを表す。
type Layers [LayerCount]bool

// IsEmpty はどのレイヤーにも属さないか判定する。
func (l Layers) IsEmpty() bool {
	for _, on := range l {
		if on {
			return false
		}
	}
	return true
}

// Indexes は有効なレイヤー番号一覧を返す。
func (l Layers) Indexes() []int {
	out := make([]int, 0, LayerCount)
	for i, on := range l {
		if on {
			out = append(out, i)
		}
	}
	return out
}

// LayersOf は番号指定のレイヤーマスクを返す。範囲外は無視する。
func LayersOf(indexes ...int) Layers {
	var layers Layers
	for _, index := range indexes {
		if index >= 0 && index < LayerCount {
			layers[index] = true
		}
	}
	return layers
}

// AxisLock は軸ごとのロック状態を表す。
type AxisLock [3]bool

// AxisLockAll は全軸ロックを表す。
var AxisLockAll = AxisLock{true, true, true}

// Locks はポーズ操作のロック設定を表す。
type Locks struct {
	Location AxisLock
	Rotation AxisLock
	Scale    AxisLock
}

// Bone はスケルトンの1ボーンを表す。
type Bone struct {
	index       BoneIndex
	Name        string
	Head        mmath.Vec3
	Tail        mmath.Vec3
	Roll        float64
	ParentIndex BoneIndex
	Connected   bool
	Role        Role
	Deform      bool
	Layers      Layers
	Locks       Locks
	RigType     string
	Params      Params
	Constraints []Constraint
	Properties  []PropertyDef
	Widget      string
}

// NewBoneByName は名前指定でボーンを生成する。
func NewBoneByName(name string) *Bone {
	return &Bone{
		index:       NoBone,
		Name:        name,
		ParentIndex: NoBone,
		Role:        ROLE_SOURCE,
	}
}

// Index はスケルトン内の番号を返す。
func (b *Bone) Index() BoneIndex {
	if b == nil {
		return NoBone
	}
	return b.index
}

// Vector はヘッドからテールへのベクトルを返す。
func (b *Bone) Vector() mmath.Vec3 {
	return b.Tail.Subed(b.Head)
}

// Length はボーン長を返す。
func (b *Bone) Length() float64 {
	return b.Vector().Length()
}

// Direction はボーン方向の単位ベクトルを返す。
func (b *Bone) Direction() mmath.Vec3 {
	return b.Vector().Normalized()
}

// Center はボーン中点を返す。
func (b *Bone) Center() mmath.Vec3 {
	return b.Head.Lerp(b.Tail, 0.5)
}

// HasParent は親を持つか判定する。
func (b *Bone) HasParent() bool {
	return b.ParentIndex.IsValid()
}

// CopyGeometry は元ボーンのヘッド・テール・ロールを複写する。
func (b *Bone) CopyGeometry(src *Bone) {
	if b == nil || src == nil {
		return
	}
	b.Head = src.Head
	b.Tail = src.Tail
	b.Roll = src.Roll
}

// Property は名前指定で公開プロパティを返す。
func (b *Bone) Property(name string) (PropertyDef, bool) {
	if b == nil {
		return PropertyDef{}, false
	}
	for _, prop := range b.Properties {
		if prop.Name == name {
			return prop, true
		}
	}
	return PropertyDef{}, false
}

// IsFeatureRoot は機能タグを持つ元ボーンか判定する。
func (b *Bone) IsFeatureRoot() bool {
	return b != nil && b.Role == ROLE_SOURCE && b.RigType != ""
}
