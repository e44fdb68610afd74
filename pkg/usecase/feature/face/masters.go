// 指示: miu200521358
package face

import (
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/mmath"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/model"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/naming"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/mrig"
)

const (
	jawMasterName    = "jaw_master"
	noseMasterName   = "nose_master"
	tongueMasterName = "tongue_master"
	eyesMasterName   = "eyes"
	eyesParentName   = "eyes_parent"
	chinFollowName   = "chin"
	tongueFollowName = "tongue"

	// eyeTargetDistance は眼球長に対する視線ターゲットまでの距離倍率。
	eyeTargetDistance = 4.0
)

// controlLayers は主レイヤー指定をコントロールへ反映する。
func (f *faceRig) controlLayers(bone *model.Bone) {
	if layers, ok := f.layersOf(LAYER_PRIMARY); ok {
		bone.Layers = layers
	}
}

// buildJaw は顎マスターと口元の減衰段階機構を作る。
func (f *faceRig) buildJaw() {
	chain := f.chain("jaw")
	if chain == nil {
		return
	}
	jaw := f.ri.Bone(chain.bones[0])
	master := f.ri.CopyBone(jaw, model.ROLE_CONTROL, jawMasterName)
	f.controlLayers(master)
	f.ri.SetParent(master.Index(), f.root.Index(), false)
	f.jawMaster = master
	f.anchor(naming.PrefixControl+jawMasterName, master)
	f.ri.Constrain().CopyTransforms(jaw.Index(), master.Index())

	constrain := f.ri.Constrain()
	for k, level := range jawLevels {
		mch := f.ri.CopyBone(jaw, model.ROLE_MECHANISM, jawMasterName)
		mrig.ShrinkLength(mch, mrig.HalfLength)
		f.ri.SetParent(mch.Index(), f.root.Index(), false)
		constrain.CopyTransforms(mch.Index(), master.Index(), mrig.WithName("jaw"), mrig.WithInfluence(level))
		f.jawLevels = append(f.jawLevels, mch)
		f.anchor(naming.PrefixMechanism+naming.WithOrdinal(jawMasterName, k), mch)
	}
	for _, k := range mouthLockLevels {
		owner := f.jawLevels[k].Index()
		idx := constrain.CopyTransforms(owner, f.jawLevels[0].Index(), mrig.WithName(model.PropMouthLock), mrig.WithInfluence(0))
		f.addFollow(model.PropMouthLock, owner, idx)
	}
	logFaceVerbose("顎マスター生成: %s levels=%d", master.Name, len(f.jawLevels))
}

// buildChin は顎先ツイークの親となる顎追従機構を作る。
func (f *faceRig) buildChin() {
	chain := f.chain("chin")
	if chain == nil || f.jawMaster == nil {
		return
	}
	chin := f.ri.Bone(chain.bones[0])
	mch := f.ri.CopyBone(chin, model.ROLE_MECHANISM, chinFollowName)
	mrig.ShrinkLength(mch, mrig.QuarterLength)
	f.ri.SetParent(mch.Index(), f.root.Index(), false)
	f.anchor(naming.PrefixMechanism+chinFollowName, mch)
	idx := f.ri.Constrain().CopyTransforms(mch.Index(), f.jawLevels[0].Index(), mrig.WithName("follow"))
	f.addFollow(model.PropChinFollow, mch.Index(), idx)
}

// buildTongue は舌全長を覆うマスターを作り、舌ツイークをその子にする。
func (f *faceRig) buildTongue() {
	chain := f.chain("tongue")
	if chain == nil {
		return
	}
	first := f.ri.Bone(chain.bones[0])
	last := f.ri.Bone(chain.bones[len(chain.bones)-1])
	master := f.ri.NewBone(model.ROLE_CONTROL, tongueMasterName)
	mrig.Span(master, first.Head, last.Tail, first)
	f.controlLayers(master)
	f.ri.SetParent(master.Index(), f.root.Index(), false)
	f.anchor(naming.PrefixControl+tongueMasterName, master)

	for _, planned := range f.tweaksOfChain("tongue") {
		f.ri.SetParent(planned.bone.Index(), master.Index(), false)
	}

	if f.jawMaster == nil {
		return
	}
	mch := f.ri.CopyBone(first, model.ROLE_MECHANISM, tongueFollowName)
	mrig.ShrinkLength(mch, mrig.QuarterLength)
	f.ri.SetParent(mch.Index(), f.root.Index(), false)
	f.anchor(naming.PrefixMechanism+tongueFollowName, mch)
	idx := f.ri.Constrain().CopyTransforms(mch.Index(), f.jawLevels[0].Index(), mrig.WithName("follow"))
	f.addFollow(model.PropTongueFollow, mch.Index(), idx)
}

// buildNose は鼻先に鼻マスターを作る。
func (f *faceRig) buildNose() {
	chain := f.chain("nose")
	if chain == nil || len(chain.bones) < 2 {
		return
	}
	tip := f.ri.Bone(chain.bones[len(chain.bones)-1])
	master := f.ri.NewBone(model.ROLE_CONTROL, noseMasterName)
	master.Head = tip.Head
	master.Tail = tip.Head.Added(tip.Vector().MuledScalar(mrig.HalfLength))
	master.Roll = tip.Roll
	f.controlLayers(master)
	f.ri.SetParent(master.Index(), f.root.Index(), false)
	f.anchor(naming.PrefixControl+noseMasterName, master)
}

// buildEars は耳ごとのコントロールを作り、耳ツイークをその子にする。
func (f *faceRig) buildEars() {
	for _, key := range []string{"ear.L", "ear.R"} {
		chain := f.chain(key)
		if chain == nil {
			continue
		}
		ear := f.ri.Bone(chain.bones[0])
		ctrl := f.ri.CopyBone(ear, model.ROLE_CONTROL, ear.Name)
		if layers, ok := f.layersOf(LAYER_SECONDARY); ok {
			ctrl.Layers = layers
		}
		f.ri.SetParent(ctrl.Index(), f.root.Index(), false)
		for _, planned := range f.tweaksOfChain(key) {
			f.ri.SetParent(planned.bone.Index(), ctrl.Index(), false)
		}
	}
}

// buildEyes は視線ターゲットと眼球機構、瞼機構を作る。
func (f *faceRig) buildEyes() {
	eyes := make([]*model.Bone, 0, 2)
	for _, key := range []string{"eye.L", "eye.R"} {
		if chain := f.chain(key); chain != nil {
			eyes = append(eyes, f.ri.Bone(chain.bones[0]))
		}
	}
	if len(eyes) == 0 {
		return
	}

	parent := f.ri.CopyBone(f.root, model.ROLE_MECHANISM, eyesParentName)
	mrig.ShrinkLength(parent, mrig.QuarterLength)
	followParent := f.options.RootBone(f.ri.Skeleton())
	if !followParent.IsValid() {
		followParent = f.root.ParentIndex
	}
	f.ri.SetParent(parent.Index(), followParent, false)
	f.anchor(naming.PrefixMechanism+eyesParentName, parent)
	idx := f.ri.Constrain().CopyTransforms(parent.Index(), f.root.Index(), mrig.WithName("follow"))
	f.addFollow(model.PropEyesFollow, parent.Index(), idx)

	heads := make([]mmath.Vec3, 0, len(eyes))
	for _, eye := range eyes {
		heads = append(heads, eye.Head)
	}
	eyeLength := eyes[0].Length()
	forward := eyes[0].Direction()
	master := f.ri.NewBone(model.ROLE_CONTROL, eyesMasterName)
	master.Head = mmath.MeanVec3(heads...).Added(forward.MuledScalar(eyeLength * eyeTargetDistance))
	master.Tail = master.Head.Added(mmath.UnitZ.MuledScalar(eyeLength))
	f.controlLayers(master)
	f.ri.SetParent(master.Index(), f.root.Index(), false)
	f.anchor(naming.PrefixControl+eyesMasterName, master)
	f.eyesMaster = master

	constrain := f.ri.Constrain()
	for _, eye := range eyes {
		target := f.ri.NewBone(model.ROLE_CONTROL, eye.Name)
		target.Head = eye.Head.Added(eye.Direction().MuledScalar(eyeLength * eyeTargetDistance))
		target.Tail = target.Head.Added(mmath.UnitZ.MuledScalar(eyeLength * mrig.HalfLength))
		f.controlLayers(target)
		f.ri.SetParent(target.Index(), master.Index(), false)

		mch := f.ri.CopyBone(eye, model.ROLE_MECHANISM, eye.Name)
		f.ri.SetParent(mch.Index(), f.root.Index(), false)
		constrain.DampedTrack(mch.Index(), target.Index())
		constrain.CopyTransforms(eye.Index(), mch.Index())
		f.buildLids(eye, mch)
	}
}

// buildLids は眼球中心から各瞼ツイークへ向かう機構を作り、瞼ツイークをその子にする。
func (f *faceRig) buildLids(eye, eyeMechanism *model.Bone) {
	side := naming.SideOf(eye.Name)
	keys := []string{naming.WithSide("lid.T", side), naming.WithSide("lid.B", side)}
	for _, planned := range f.tweaksOfChain(keys...) {
		lid := f.ri.NewBone(model.ROLE_MECHANISM, planned.Name)
		lid.Head = eye.Head
		lid.Tail = planned.Head
		lid.Roll = eye.Roll
		f.ri.SetParent(lid.Index(), eyeMechanism.Index(), false)
		f.ri.SetParent(planned.bone.Index(), lid.Index(), false)
	}
}
