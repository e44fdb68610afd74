// 指示: miu200521358
package rigfixture

import (
	"fmt"

	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/mmath"
)

// faceChain は顔サブチェーンの固定形状。
type faceChain struct {
	key    string
	parent string
	points []mmath.Vec3
}

// leftFaceChains は左側サブチェーンの形状。右側は x を反転して作る。
var leftFaceChains = []faceChain{
	{key: "lip.T", points: []mmath.Vec3{v(0, -0.09, 1.52), v(0.013, -0.088, 1.518), v(0.025, -0.08, 1.51)}},
	{key: "lip.B", points: []mmath.Vec3{v(0, -0.088, 1.5), v(0.013, -0.086, 1.503), v(0.025, -0.08, 1.51)}},
	{key: "ear", points: []mmath.Vec3{v(0.07, 0, 1.6), v(0.08, 0, 1.63), v(0.08, 0.01, 1.66)}},
	{key: "lid.T", points: []mmath.Vec3{
		v(0.015, -0.085, 1.62), v(0.022, -0.09, 1.627), v(0.03, -0.092, 1.63), v(0.038, -0.09, 1.627), v(0.045, -0.085, 1.62),
	}},
	{key: "lid.B", points: []mmath.Vec3{
		v(0.045, -0.085, 1.62), v(0.038, -0.09, 1.613), v(0.03, -0.091, 1.61), v(0.022, -0.09, 1.613), v(0.015, -0.085, 1.62),
	}},
	{key: "brow.B", points: []mmath.Vec3{v(0.015, -0.09, 1.64), v(0.03, -0.092, 1.645), v(0.045, -0.085, 1.64)}},
	{key: "temple", points: []mmath.Vec3{v(0.06, -0.04, 1.66), v(0.065, -0.04, 1.58)}},
	{key: "cheek.B", parent: "temple", points: []mmath.Vec3{v(0.065, -0.04, 1.58), v(0.04, -0.08, 1.53), v(0.03, -0.085, 1.56)}},
	{key: "brow.T", parent: "cheek.B", points: []mmath.Vec3{v(0.015, -0.095, 1.66), v(0.03, -0.097, 1.665), v(0.05, -0.09, 1.66)}},
	{key: "cheek.T", points: []mmath.Vec3{v(0.06, -0.05, 1.6), v(0.04, -0.09, 1.59), v(0.02, -0.1, 1.6)}},
	{key: "eye", points: []mmath.Vec3{v(0.03, -0.07, 1.62), v(0.03, -0.09, 1.62)}},
}

// Face は顔ルート face と名前付きサブチェーン一式を追加する。omit のサブチェーン名は作らない。
func (b *Builder) Face(parent string, omit ...string) *Builder {
	skip := map[string]bool{}
	for _, key := range omit {
		skip[key] = true
	}
	b.Bone("face", parent, v(0, 0, 1.5), v(0, 0, 1.7), false)
	if !skip["nose"] {
		b.faceChain("face", "nose", v(0, -0.08, 1.62), v(0, -0.1, 1.58), v(0, -0.11, 1.55), v(0, -0.09, 1.54))
	}
	if !skip["jaw"] {
		b.faceChain("face", "jaw", v(0, -0.02, 1.55), v(0, -0.07, 1.47))
		if !skip["chin"] {
			b.faceChain("jaw", "chin", v(0, -0.07, 1.47), v(0, -0.08, 1.49), v(0, -0.085, 1.495))
		}
	}
	for _, side := range []string{"L", "R"} {
		s := sideSign(side)
		for _, chain := range leftFaceChains {
			key := chain.key + "." + side
			if skip[key] {
				continue
			}
			parent := "face"
			if chain.parent != "" && b.sk.Contains(faceLastName(b, chain.parent+"."+side)) {
				parent = faceLastName(b, chain.parent+"."+side)
			}
			points := make([]mmath.Vec3, 0, len(chain.points))
			for _, p := range chain.points {
				points = append(points, v(s*p.X, p.Y, p.Z))
			}
			b.faceChain(parent, key, points...)
		}
	}
	tongueParent := "face"
	if b.sk.Contains("jaw") {
		tongueParent = "jaw"
	}
	if !skip["tongue"] {
		b.faceChain(tongueParent, "tongue", v(0, -0.06, 1.5), v(0, -0.07, 1.505), v(0, -0.08, 1.505), v(0, -0.085, 1.502))
	}
	return b
}

// faceChain は key, key.001, … の名前でチェーンを追加する。
func (b *Builder) faceChain(parent, key string, points ...mmath.Vec3) {
	names := make([]string, 0, len(points)-1)
	for i := 0; i < len(points)-1; i++ {
		if i == 0 {
			names = append(names, key)
		} else {
			names = append(names, fmt.Sprintf("%s.%03d", key, i))
		}
	}
	b.Chain(parent, names, points...)
}

// faceLastName は key で始まるチェーンの末端名を返す。
func faceLastName(b *Builder, key string) string {
	name := key
	for i := 1; b.sk.Contains(fmt.Sprintf("%s.%03d", key, i)); i++ {
		name = fmt.Sprintf("%s.%03d", key, i)
	}
	return name
}
