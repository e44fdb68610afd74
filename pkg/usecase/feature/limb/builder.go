// 指示: miu200521358
// Package limb は腕・脚のIK/FK切替リグを生成する。
package limb

import (
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/merrors"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/mmath"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/model"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/naming"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/infra/mlogging"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/mrig"
)

// LimbType は肢の種類を表す。
type LimbType string

const (
	LIMB_ARM LimbType = "arm"
	LIMB_LEG LimbType = "leg"
	LIMB_PAW LimbType = "paw"
)

const (
	paramLimbType     = "limb_type"
	paramPrimaryAxis  = "primary_rotation_axis"
	paramFkLayers     = "fk_layers"
	paramIkLayers     = "ik_layers"
	tagParent         = "parent"
	tagFk             = "fk"
	tagIk             = "ik"
	tagIkStretch      = "ik_stretch"
	ikChainCount      = 2
	defaultIkStretch  = 1.0
	parentLimitDegree = 90.0
)

// segmentCount は肢種別ごとの必要区間数を返す。
func (t LimbType) segmentCount() int {
	if t == LIMB_ARM {
		return 3
	}
	return 4
}

// stretchOffset は伸縮機構の終点に使う元ボーンの末尾からの位置を返す。
func (t LimbType) stretchOffset() int {
	if t == LIMB_ARM {
		return 1
	}
	return 2
}

func parseLimbType(value string) (LimbType, bool) {
	switch LimbType(value) {
	case LIMB_ARM, LIMB_LEG, LIMB_PAW:
		return LimbType(value), true
	}
	return "", false
}

// Builder は肢リグの生成器。
type Builder struct{}

// New は肢リグ生成器を生成する。
func New() *Builder {
	return &Builder{}
}

// Kind は機能種別を返す。
func (b *Builder) Kind() model.FeatureKind {
	return model.FEATURE_LIMB
}

// limbRig は生成途中のボーンを保持する。
type limbRig struct {
	ri           *mrig.RigInstance
	limbType     LimbType
	rootBone     model.BoneIndex
	org          []*model.Bone
	parent       *model.Bone
	parentFollow int
	fk           []*model.Bone
	fkTarget     *model.Bone
	ik           []*model.Bone
	ikControl    *model.Bone
	ikToe        *model.Bone
	stretch      *model.Bone
	stretchTo    int
}

// Generate は肢リグを生成する。区間数不足の場合はボーンを作らずに構造エラーを返す。
func (b *Builder) Generate(sk *model.Skeleton, root model.BoneIndex, options mrig.GenerateOptions) (*mrig.RigInstance, error) {
	ri, err := mrig.NewRigInstance(sk, model.FEATURE_LIMB, root)
	if err != nil {
		return nil, err
	}
	limbType, ok := parseLimbType(ri.Params.String(paramLimbType, string(LIMB_ARM)))
	if !ok {
		return nil, merrors.NewStructuralError(string(model.FEATURE_LIMB), ri.RootName,
			"肢種別が不正です: %v", ri.Params[paramLimbType])
	}
	need := limbType.segmentCount()
	chain := mrig.ConnectedChain(sk, root, need)
	if len(chain) < need {
		return nil, merrors.NewStructuralError(string(model.FEATURE_LIMB), ri.RootName,
			"%s には接続された %d 区間が必要です: got=%d", limbType, need, len(chain))
	}
	ri.Source = chain

	rig := &limbRig{ri: ri, limbType: limbType, rootBone: options.RootBone(sk)}
	for _, index := range chain {
		rig.org = append(rig.org, ri.Bone(index))
	}
	rig.buildParent()
	rig.buildFk()
	rig.buildIk()
	rig.bindProperties()
	rig.bindSources()

	if err := ri.Err(); err != nil {
		return nil, err
	}
	logLimbDebug("肢リグ生成: root=%s type=%s bones=%d", ri.RootName, limbType, ri.TotalGenerated())
	return ri, nil
}

// buildParent は肢全体の親となる機構ボーンを作る。
// ルートボーンがあれば回転と拡縮を追従し、無ければ回転制限で固定する。
func (r *limbRig) buildParent() {
	org0 := r.org[0]
	parent := r.ri.NewBone(model.ROLE_MECHANISM, naming.WithTag(org0.Name, tagParent))
	parent.Head = org0.Head
	parent.Tail = org0.Head.Added(mmath.UnitZ.MuledScalar(org0.Length() * mrig.QuarterLength))
	parent.Roll = 0
	r.ri.SetParent(parent.Index(), org0.ParentIndex, false)
	r.parent = parent

	constrain := r.ri.Constrain()
	if r.rootBone.IsValid() {
		r.parentFollow = constrain.CopyRotation(parent.Index(), r.rootBone)
		constrain.CopyScale(parent.Index(), r.rootBone)
		return
	}
	r.ri.Warn(model.RigWarningRootBoneMissing, "ルートボーンが無いため回転制限で代替します: %s", r.ri.RootName)
	axis := r.ri.Params.Axis(paramPrimaryAxis, model.AXIS_X)
	limit := model.RotationLimit{
		Use: model.AllAxes,
		Max: maskedVector(axis.Mask(), mmath.DegToRad(parentLimitDegree)),
	}
	r.parentFollow = constrain.LimitRotation(parent.Index(), limit)
}

// buildFk は元ボーンごとのFKコントロールと終端機構を作る。
func (r *limbRig) buildFk() {
	layers, hasLayers := r.ri.Params.Layers(paramFkLayers)
	last := len(r.org) - 1
	for i, org := range r.org {
		ctrl := r.ri.CopyBone(org, model.ROLE_CONTROL, naming.WithTag(org.Name, tagFk))
		if hasLayers {
			ctrl.Layers = layers
		}
		if i == 0 {
			r.ri.SetParent(ctrl.Index(), r.parent.Index(), false)
		} else {
			r.ri.SetParent(ctrl.Index(), r.fk[i-1].Index(), org.Connected)
			ctrl.Locks.Location = model.AxisLockAll
		}
		if i == last {
			ctrl.Locks.Scale = model.AxisLockAll
		}
		r.fk = append(r.fk, ctrl)
	}

	lastOrg := r.org[last]
	target := r.ri.CopyBone(lastOrg, model.ROLE_MECHANISM_TARGET, naming.WithTag(lastOrg.Name, tagFk))
	mrig.ShrinkLength(target, mrig.QuarterLength)
	r.ri.SetParent(target.Index(), r.fk[last].Index(), false)
	r.fkTarget = target
}

// buildIk はIKチェーン、IKコントロール、伸縮機構を作る。
func (r *limbRig) buildIk() {
	layers, hasLayers := r.ri.Params.Layers(paramIkLayers)
	for i := 0; i < ikChainCount; i++ {
		org := r.org[i]
		mch := r.ri.CopyBone(org, model.ROLE_MECHANISM, naming.WithTag(org.Name, tagIk))
		if i == 0 {
			r.ri.SetParent(mch.Index(), r.parent.Index(), false)
		} else {
			r.ri.SetParent(mch.Index(), r.ik[i-1].Index(), true)
		}
		r.ik = append(r.ik, mch)
	}

	end := r.org[ikChainCount]
	ctrl := r.ri.CopyBone(end, model.ROLE_CONTROL, naming.WithTag(end.Name, tagIk))
	mrig.ShrinkLength(ctrl, mrig.QuarterLength)
	if hasLayers {
		ctrl.Layers = layers
	}
	r.ri.SetParent(ctrl.Index(), r.rootBone, false)
	r.ikControl = ctrl
	r.ri.Constrain().IK(r.ik[ikChainCount-1].Index(), ctrl.Index(), ikChainCount, model.NoBone)

	if len(r.org) > ikChainCount+1 {
		toe := r.org[ikChainCount+1]
		mch := r.ri.CopyBone(toe, model.ROLE_MECHANISM, naming.WithTag(toe.Name, tagIk))
		r.ri.SetParent(mch.Index(), ctrl.Index(), false)
		r.ikToe = mch
	}

	org0 := r.org[0]
	stretchEnd := r.org[len(r.org)-r.limbType.stretchOffset()]
	stretch := r.ri.NewBone(model.ROLE_MECHANISM, naming.WithTag(org0.Name, tagIkStretch))
	mrig.Span(stretch, org0.Head, stretchEnd.Head, org0)
	r.ri.SetParent(stretch.Index(), r.parent.Index(), false)
	r.ri.Constrain().DampedTrack(stretch.Index(), ctrl.Index())
	r.stretchTo = r.ri.Constrain().StretchTo(stretch.Index(), ctrl.Index())
	r.stretch = stretch
}

// bindProperties は先頭FKコントロールへプロパティを公開し、親追従と伸縮を駆動する。
func (r *limbRig) bindProperties() {
	owner := r.fk[0].Index()
	drive := r.ri.Drive()
	follow := drive.Expose(owner, model.NewRateProperty(model.PropFkLimbFollow, 0, "FK limb follows root rotation"))
	stretch := drive.Expose(owner, model.NewRateProperty(model.PropIkStretch, defaultIkStretch, "IK chain stretch"))
	drive.Expose(owner, model.NewRateProperty(model.PropIkFkRate, 0, "IK (0) / FK (1) blend"))

	drive.Average(r.parent.Index(), r.parentFollow, follow)
	drive.Average(r.stretch.Index(), r.stretchTo, stretch)

	r.ri.AddUIRow(owner, model.PropIkFkRate, model.LabelIkFk)
	r.ri.AddUIRow(owner, model.PropFkLimbFollow, model.LabelFkLimbFollow)
	r.ri.AddUIRow(owner, model.PropIkStretch, model.LabelIkStretch)
}

// ikComponent は元ボーン i に対応するIK側のボーンを返す。
func (r *limbRig) ikComponent(i int) *model.Bone {
	switch {
	case i < ikChainCount:
		return r.ik[i]
	case i == ikChainCount:
		return r.ikControl
	default:
		return r.ikToe
	}
}

// bindSources は元ボーンへ IK → FK → 体積維持の順でコンストレイントを付与する。
func (r *limbRig) bindSources() {
	constrain := r.ri.Constrain()
	drive := r.ri.Drive()
	rate := mrig.PropertyRef{Bone: r.fk[0].Index(), Property: model.PropIkFkRate}
	for i, org := range r.org {
		constrain.CopyTransforms(org.Index(), r.ikComponent(i).Index(), mrig.WithName("IK"))
		fk := constrain.CopyTransforms(org.Index(), r.fk[i].Index(), mrig.WithName("FK"))
		drive.Average(org.Index(), fk, rate)
		constrain.MaintainVolume(org.Index())
	}
}

// maskedVector はマスク軸のみ value を持つベクトルを返す。
func maskedVector(mask model.AxisMask, value float64) mmath.Vec3 {
	var v mmath.Vec3
	if mask.X {
		v.X = value
	}
	if mask.Y {
		v.Y = value
	}
	if mask.Z {
		v.Z = value
	}
	return v
}

// logLimbDebug は肢リグ生成のDEBUGログを出力する。
func logLimbDebug(format string, params ...any) {
	logger := mlogging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Debug(format, params...)
	if logger.IsVerboseEnabled(mlogging.VERBOSE_INDEX_RIG) {
		logger.Verbose(mlogging.VERBOSE_INDEX_RIG, "[DEBUG] "+format, params...)
	}
}
