// 指示: miu200521358
// Package tentacle は指型FKとIKを切り替える触手リグを生成する。
package tentacle

import (
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/merrors"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/model"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/naming"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/infra/mlogging"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/feature/finger"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/mrig"
)

const (
	paramPrimaryAxis = "primary_rotation_axis"
	paramUsePhysics  = "use_physics"
	tagIk            = "ik"
	tagPhysics       = "phy"
	minChainLength   = 2
)

// Builder は触手リグの生成器。
type Builder struct{}

// New は触手リグ生成器を生成する。
func New() *Builder {
	return &Builder{}
}

// Kind は機能種別を返す。
func (b *Builder) Kind() model.FeatureKind {
	return model.FEATURE_TENTACLE
}

// Generate は触手リグを生成する。
func (b *Builder) Generate(sk *model.Skeleton, root model.BoneIndex, options mrig.GenerateOptions) (*mrig.RigInstance, error) {
	ri, err := mrig.NewRigInstance(sk, model.FEATURE_TENTACLE, root)
	if err != nil {
		return nil, err
	}
	chain := mrig.ConnectedChain(sk, root, 0)
	if len(chain) < minChainLength {
		return nil, merrors.NewStructuralError(string(model.FEATURE_TENTACLE), ri.RootName,
			"チェーンは %d 区間以上が必要です: got=%d", minChainLength, len(chain))
	}
	ri.Source = chain

	curl := finger.BuildCurlChain(ri, chain, ri.Params.Axis(paramPrimaryAxis, model.AXIS_X))
	org0 := ri.Bone(chain[0])
	last := ri.Bone(chain[len(chain)-1])

	ik := make([]*model.Bone, 0, len(chain))
	for i, index := range chain {
		org := ri.Bone(index)
		mch := ri.CopyBone(org, model.ROLE_MECHANISM, naming.WithTag(org.Name, tagIk))
		if i == 0 {
			ri.SetParent(mch.Index(), org0.ParentIndex, false)
		} else {
			ri.SetParent(mch.Index(), ik[i-1].Index(), org.Connected)
		}
		ik = append(ik, mch)
	}

	ikControl := ri.NewBone(model.ROLE_CONTROL, naming.WithTag(last.Name, tagIk))
	ikControl.Head = last.Tail
	ikControl.Tail = last.Tail.Added(last.Vector().MuledScalar(mrig.QuarterLength))
	ikControl.Roll = last.Roll
	ikParent := options.RootBone(sk)
	if !ikParent.IsValid() {
		ikParent = org0.ParentIndex
	}
	ri.SetParent(ikControl.Index(), ikParent, false)
	ri.Constrain().IK(ik[len(ik)-1].Index(), ikControl.Index(), len(chain), model.NoBone)

	drive := ri.Drive()
	owner := curl.Master.Index()
	rate := drive.Expose(owner, model.NewRateProperty(model.PropIkFkRate, 0, "IK (0) / FK (1) blend"))
	ri.AddUIRow(owner, model.PropIkFkRate, model.LabelIkFk)

	var physics []*model.Bone
	var rigPhy mrig.PropertyRef
	if ri.Params.Bool(paramUsePhysics, false) {
		physics = buildPhysicsChain(ri, chain)
		rigPhy = drive.Expose(owner, model.NewRateProperty(model.PropRigPhy, 0, "Rig (0) / physics (1) blend"))
		ri.AddUIRow(owner, model.PropRigPhy, model.LabelRigPhy)
	}

	constrain := ri.Constrain()
	for i, index := range chain {
		constrain.CopyTransforms(index, ik[i].Index(), mrig.WithName("IK"))
		fk := constrain.CopyTransforms(index, curl.Controls[i].Index(), mrig.WithName("FK"))
		drive.Average(index, fk, rate)
		if physics != nil {
			phy := constrain.CopyTransforms(index, physics[i].Index(), mrig.WithName("PHY"))
			drive.Polynomial(index, phy, []float64{0, 1}, rigPhy)
		}
	}

	if err := ri.Err(); err != nil {
		return nil, err
	}
	logTentacleDebug("触手リグ生成: root=%s segments=%d physics=%t", ri.RootName, len(chain), physics != nil)
	return ri, nil
}

// buildPhysicsChain は外部の物理演算が書き込む受け皿チェーンを作る。
func buildPhysicsChain(ri *mrig.RigInstance, chain []model.BoneIndex) []*model.Bone {
	out := make([]*model.Bone, 0, len(chain))
	for i, index := range chain {
		org := ri.Bone(index)
		mch := ri.CopyBone(org, model.ROLE_MECHANISM, naming.WithTag(org.Name, tagPhysics))
		if i == 0 {
			ri.SetParent(mch.Index(), org.ParentIndex, false)
		} else {
			ri.SetParent(mch.Index(), out[i-1].Index(), org.Connected)
		}
		out = append(out, mch)
	}
	return out
}

// logTentacleDebug は触手リグ生成のDEBUGログを出力する。
func logTentacleDebug(format string, params ...any) {
	logger := mlogging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Debug(format, params...)
	if logger.IsVerboseEnabled(mlogging.VERBOSE_INDEX_RIG) {
		logger.Verbose(mlogging.VERBOSE_INDEX_RIG, "[DEBUG] "+format, params...)
	}
}
