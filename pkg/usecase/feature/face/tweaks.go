// 指示: miu200521358
package face

import (
	"math"
	"strings"

	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/mmath"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/model"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/naming"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/mrig"
)

// positionTolerance はツイーク位置を同一視する格子幅。
const positionTolerance = 1e-4

const (
	lipPrefix    = "lip."
	lipCornerTag = "lips"
	tailTag      = "end"
)

// pointKey は量子化したツイーク位置。
type pointKey [3]int64

func keyOf(p mmath.Vec3) pointKey {
	return pointKey{
		int64(math.Round(p.X / positionTolerance)),
		int64(math.Round(p.Y / positionTolerance)),
		int64(math.Round(p.Z / positionTolerance)),
	}
}

// plannedTweak は確定前のツイーク。
type plannedTweak struct {
	Name   string
	Head   mmath.Vec3
	Vector mmath.Vec3
	Roll   float64
	Group  LayerGroup
	Chain  string
	bone   *model.Bone
}

// tweakPlan は位置で重複排除したツイーク計画。
type tweakPlan struct {
	order []*plannedTweak
	byKey map[pointKey]*plannedTweak
}

func newTweakPlan() *tweakPlan {
	return &tweakPlan{byKey: map[pointKey]*plannedTweak{}}
}

// add は位置 head にツイークを計画する。既存位置なら再利用し、
// 左右対の名前が重なった場合は左右表記を外した中央ツイークにする。
func (p *tweakPlan) add(name string, head, vector mmath.Vec3, roll float64, def subChainDef) *plannedTweak {
	key := keyOf(head)
	if existing, ok := p.byKey[key]; ok {
		if mirrored, ok := naming.MirrorName(existing.Name); ok && mirrored == name {
			existing.Name = naming.StripSide(existing.Name)
		}
		return existing
	}
	planned := &plannedTweak{
		Name:   name,
		Head:   head,
		Vector: vector,
		Roll:   roll,
		Group:  def.Group,
		Chain:  def.Key,
	}
	p.byKey[key] = planned
	p.order = append(p.order, planned)
	return planned
}

// at は位置 p のツイークを返す。無い場合は nil。
func (p *tweakPlan) at(point mmath.Vec3) *plannedTweak {
	return p.byKey[keyOf(point)]
}

// tailTweakName はサブチェーン末端ツイークの名前を返す。唇は左右の口角名を共有する。
func tailTweakName(def subChainDef, last string) string {
	if strings.HasPrefix(def.Key, lipPrefix) {
		return naming.WithSide(lipCornerTag, naming.SideOf(last))
	}
	return naming.WithTag(naming.StripOrdinal(last), tailTag)
}

// planTweaks は全サブチェーンの先頭位置を先に、末端位置を後に計画する。
func (f *faceRig) planTweaks() {
	f.tweaks = newTweakPlan()
	for _, chain := range f.tweakChains() {
		for _, index := range chain.bones {
			bone := f.ri.Bone(index)
			f.tweaks.add(bone.Name, bone.Head, bone.Vector().MuledScalar(mrig.QuarterLength), bone.Roll, chain.def)
		}
	}
	for _, chain := range f.tweakChains() {
		last := f.ri.Bone(chain.bones[len(chain.bones)-1])
		f.tweaks.add(tailTweakName(chain.def, last.Name), last.Tail,
			last.Vector().MuledScalar(mrig.QuarterLength), last.Roll, chain.def)
	}
}

// commitTweaks は計画済みツイークを生成し、顔ルートへ仮に親付けする。
func (f *faceRig) commitTweaks() {
	for _, planned := range f.tweaks.order {
		bone := f.ri.NewBone(model.ROLE_TWEAK, planned.Name)
		bone.Head = planned.Head
		bone.Tail = planned.Head.Added(planned.Vector)
		bone.Roll = planned.Roll
		if layers, ok := f.layersOf(planned.Group); ok {
			bone.Layers = layers
		}
		f.ri.SetParent(bone.Index(), f.root.Index(), false)
		planned.bone = bone
		f.anchor(naming.PrefixTweak+planned.Name, bone)
	}
	logFaceVerbose("ツイーク確定: root=%s count=%d", f.ri.RootName, len(f.tweaks.order))
}

// wireSources は元ボーンを先頭ツイークへ追従させ、末端ツイークへ伸縮させる。
func (f *faceRig) wireSources() {
	constrain := f.ri.Constrain()
	for _, chain := range f.tweakChains() {
		for _, index := range chain.bones {
			bone := f.ri.Bone(index)
			head := f.tweaks.at(bone.Head)
			if head == nil || head.bone == nil {
				continue
			}
			constrain.CopyLocation(index, head.bone.Index())
			tail := f.tweaks.at(bone.Tail)
			if tail == nil || tail.bone == nil || tail == head {
				continue
			}
			constrain.DampedTrack(index, tail.bone.Index())
			constrain.StretchTo(index, tail.bone.Index())
		}
	}
}

// tweaksOfChain は指定サブチェーンが最初に計画したツイークを返す。
func (f *faceRig) tweaksOfChain(keys ...string) []*plannedTweak {
	out := make([]*plannedTweak, 0)
	for _, planned := range f.tweaks.order {
		for _, key := range keys {
			if planned.Chain == key {
				out = append(out, planned)
				break
			}
		}
	}
	return out
}
