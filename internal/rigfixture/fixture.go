// 指示: miu200521358
// Package rigfixture はテストとバッチ検証で使うメタリグ骨格を組み立てる。
package rigfixture

import (
	"fmt"
	"math"

	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/mmath"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/model"
)

// Builder はメタリグ骨格を順に組み立てる。
type Builder struct {
	sk *model.Skeleton
}

// New は空のメタリグを生成する。
func New(name string) *Builder {
	return &Builder{sk: model.NewSkeleton(name)}
}

// Skeleton は組み立てたスケルトンを返す。
func (b *Builder) Skeleton() *model.Skeleton {
	return b.sk
}

// Bone はボーンを追加する。parent が空の場合はルートにする。
func (b *Builder) Bone(name, parent string, head, tail mmath.Vec3, connected bool) *Builder {
	bone := model.NewBoneByName(name)
	bone.Head = head
	bone.Tail = tail
	bone.Deform = true
	if parent != "" {
		bone.ParentIndex = b.sk.IndexOf(parent)
		if !bone.ParentIndex.IsValid() {
			panic(fmt.Sprintf("fixture parent not found: %s", parent))
		}
		bone.Connected = connected
	}
	if _, err := b.sk.AddBone(bone); err != nil {
		panic(err)
	}
	return b
}

// Chain は points の連続区間で接続チェーンを追加する。points は len(names)+1 個。
func (b *Builder) Chain(parent string, names []string, points ...mmath.Vec3) *Builder {
	if len(points) != len(names)+1 {
		panic(fmt.Sprintf("fixture chain needs %d points: got=%d", len(names)+1, len(points)))
	}
	for i, name := range names {
		p := parent
		connected := false
		if i > 0 {
			p = names[i-1]
			connected = true
		}
		b.Bone(name, p, points[i], points[i+1], connected)
	}
	return b
}

// Tag は機能タグとパラメータを付与する。
func (b *Builder) Tag(name, rigType string, params model.Params) *Builder {
	bone, err := b.sk.GetByName(name)
	if err != nil {
		panic(err)
	}
	bone.RigType = rigType
	if params == nil {
		params = model.Params{}
	}
	bone.Params = params
	return b
}

// v は座標を短く書くための補助。
func v(x, y, z float64) mmath.Vec3 {
	return mmath.NewVec3(x, y, z)
}

// sideSign は左右の x 符号を返す。
func sideSign(side string) float64 {
	if side == "R" {
		return -1
	}
	return 1
}

// Root は追従先ルートボーンを追加する。
func (b *Builder) Root(name string) *Builder {
	return b.Bone(name, "", v(0, 0, 0), v(0, 1, 0), false)
}

// Arm は upper_arm, forearm, hand の3区間の腕を追加する。
func (b *Builder) Arm(parent, side string) *Builder {
	s := sideSign(side)
	names := []string{"upper_arm." + side, "forearm." + side, "hand." + side}
	return b.Chain(parent, names,
		v(0.2*s, 0, 1.4), v(0.5*s, 0.02, 1.4), v(0.75*s, 0, 1.4), v(0.85*s, 0, 1.4))
}

// Leg は thigh, shin, foot, toe の4区間の脚を追加する。
func (b *Builder) Leg(parent, side string) *Builder {
	s := sideSign(side)
	names := []string{"thigh." + side, "shin." + side, "foot." + side, "toe." + side}
	return b.Chain(parent, names,
		v(0.1*s, 0, 1.0), v(0.1*s, -0.02, 0.55), v(0.1*s, 0, 0.1), v(0.1*s, -0.12, 0.02), v(0.1*s, -0.2, 0.02))
}

// Spine は count 区間の背骨を追加する。先頭は spine、以降は spine.001 形式。
func (b *Builder) Spine(parent string, count int) *Builder {
	names := make([]string, 0, count)
	points := make([]mmath.Vec3, 0, count+1)
	for i := 0; i < count; i++ {
		if i == 0 {
			names = append(names, "spine")
		} else {
			names = append(names, fmt.Sprintf("spine.%03d", i))
		}
		points = append(points, v(0, 0, 1.0+0.12*float64(i)))
	}
	points = append(points, v(0, 0, 1.0+0.12*float64(count)))
	return b.Chain(parent, names, points...)
}

// Finger は3区間の指を追加する。
func (b *Builder) Finger(parent, stem, side string, offset float64) *Builder {
	s := sideSign(side)
	names := []string{
		fmt.Sprintf("%s.01.%s", stem, side),
		fmt.Sprintf("%s.02.%s", stem, side),
		fmt.Sprintf("%s.03.%s", stem, side),
	}
	return b.Chain(parent, names,
		v(0.9*s, offset, 1.4), v(0.95*s, offset, 1.4), v(0.98*s, offset, 1.4), v(1.0*s, offset, 1.4))
}

// Palm は手のひら4本を hand の子として追加する。
func (b *Builder) Palm(parent, side string) *Builder {
	s := sideSign(side)
	for i := 1; i <= 4; i++ {
		y := 0.03 * float64(i-1)
		b.Bone(fmt.Sprintf("palm.%02d.%s", i, side), parent, v(0.76*s, y, 1.4), v(0.86*s, y, 1.4), false)
	}
	return b
}

// Tentacle は count 区間の触手を追加する。
func (b *Builder) Tentacle(parent, stem string, count int) *Builder {
	names := make([]string, 0, count)
	points := make([]mmath.Vec3, 0, count+1)
	for i := 0; i < count; i++ {
		if i == 0 {
			names = append(names, stem)
		} else {
			names = append(names, fmt.Sprintf("%s.%03d", stem, i))
		}
		points = append(points, v(0, -0.1*float64(i), 0.5))
	}
	points = append(points, v(0, -0.1*float64(count), 0.5))
	return b.Chain(parent, names, points...)
}

// Ring は半円弧を count 区間で追加する。side が空なら全周を1本で追加する。
func (b *Builder) Ring(parent, stem, side string, count int, radius float64, center mmath.Vec3) *Builder {
	names := make([]string, 0, count)
	points := make([]mmath.Vec3, 0, count+1)
	arc := 2.0
	s := 1.0
	suffix := ""
	if side != "" {
		arc = 1.0
		s = sideSign(side)
		suffix = "." + side
	}
	for i := 0; i <= count; i++ {
		if i < count {
			if i == 0 {
				names = append(names, stem+suffix)
			} else {
				names = append(names, fmt.Sprintf("%s%s.%03d", stem, suffix, i))
			}
		}
		angle := arc * math.Pi * float64(i) / float64(count)
		points = append(points, center.Added(v(s*radius*math.Sin(angle), 0, radius*math.Cos(angle))))
	}
	return b.Chain(parent, names, points...)
}
