// 指示: miu200521358
// Package torso は背骨チェーンから腰・胸・首・頭の胴体リグを生成する。
package torso

import (
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/merrors"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/mmath"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/model"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/naming"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/infra/mlogging"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/mrig"
)

const (
	paramPivotPos     = "pivot_pos"
	paramNeckPos      = "neck_pos"
	paramTweakLayers  = "tweak_layers"
	defaultPivotPos   = 2
	defaultNeckPos    = 5
	minSegmentCount   = 5
	defaultNeckFollow = 0.5
	defaultHeadFollow = 0.0
)

// 生成ボーンの基底名。
const (
	nameTorso = "torso"
	nameHips  = "hips"
	nameChest = "chest"
	nameNeck  = "neck"
	nameHead  = "head"
	namePivot = "pivot"
	tagRot    = "rot"
)

// Builder は胴体リグの生成器。
type Builder struct{}

// New は胴体リグ生成器を生成する。
func New() *Builder {
	return &Builder{}
}

// Kind は機能種別を返す。
func (b *Builder) Kind() model.FeatureKind {
	return model.FEATURE_TORSO
}

// zones は背骨チェーンの区分を表す。
type zones struct {
	lower []int
	upper []int
	neck  []int
	head  int
}

// splitZones は1始まりの pivot と neck 位置で区分を決める。
func splitZones(count, pivot, neck int) zones {
	z := zones{head: count - 1}
	for i := 0; i < pivot; i++ {
		z.lower = append(z.lower, i)
	}
	for i := pivot; i < neck-1; i++ {
		z.upper = append(z.upper, i)
	}
	for i := neck - 1; i < count-1; i++ {
		z.neck = append(z.neck, i)
	}
	return z
}

// validatePositions は区分位置の妥当性を検証する。
func validatePositions(rootName string, count, pivot, neck int) error {
	feature := string(model.FEATURE_TORSO)
	switch {
	case count < minSegmentCount:
		return merrors.NewStructuralError(feature, rootName, "背骨は %d 区間より多く必要です: got=%d", minSegmentCount-1, count)
	case pivot < 1:
		return merrors.NewStructuralError(feature, rootName, "pivot_pos は 1 以上が必要です: got=%d", pivot)
	case neck < 2:
		return merrors.NewStructuralError(feature, rootName, "neck_pos は 2 以上が必要です: got=%d", neck)
	case neck <= pivot:
		return merrors.NewStructuralError(feature, rootName, "neck_pos は pivot_pos より大きい必要があります: neck=%d pivot=%d", neck, pivot)
	case neck > count:
		return merrors.NewStructuralError(feature, rootName, "neck_pos が区間数を超えています: neck=%d count=%d", neck, count)
	}
	return nil
}

// torsoRig は生成途中のボーンを保持する。
type torsoRig struct {
	ri          *mrig.RigInstance
	org         []*model.Bone
	zones       zones
	spineLength float64
	rootBone    model.BoneIndex

	torso    *model.Bone
	hips     *model.Bone
	chest    *model.Bone
	neck     *model.Bone
	head     *model.Bone
	pivot    *model.Bone
	rotNeck  *model.Bone
	rotHead  *model.Bone
	mch      map[int]*model.Bone
	tweaks   []*model.Bone
	neckRot  [2]int
	headRot  [2]int
	upperEnd *model.Bone
	neckEnd  *model.Bone
}

// Generate は胴体リグを生成する。
func (b *Builder) Generate(sk *model.Skeleton, root model.BoneIndex, options mrig.GenerateOptions) (*mrig.RigInstance, error) {
	ri, err := mrig.NewRigInstance(sk, model.FEATURE_TORSO, root)
	if err != nil {
		return nil, err
	}
	chain := mrig.ConnectedChain(sk, root, 0)
	pivot := ri.Params.Int(paramPivotPos, defaultPivotPos)
	neck := ri.Params.Int(paramNeckPos, defaultNeckPos)
	if err := validatePositions(ri.RootName, len(chain), pivot, neck); err != nil {
		return nil, err
	}
	ri.Source = chain

	rig := &torsoRig{
		ri:          ri,
		zones:       splitZones(len(chain), pivot, neck),
		spineLength: mrig.ChainLength(sk, chain),
		rootBone:    options.RootBone(sk),
		mch:         map[int]*model.Bone{},
	}
	for _, index := range chain {
		rig.org = append(rig.org, ri.Bone(index))
	}
	rig.buildControls()
	rig.buildMechanisms()
	rig.buildTweaks()
	rig.bindProperties()

	if err := ri.Err(); err != nil {
		return nil, err
	}
	logTorsoDebug("胴体リグ生成: root=%s segments=%d pivot=%d neck=%d", ri.RootName, len(chain), pivot, neck)
	return ri, nil
}

// buildControls は torso/hips/chest/neck/head の5コントロールを作る。胸区間が空なら chest は作らない。
func (r *torsoRig) buildControls() {
	org0 := r.org[0]
	last := r.org[r.zones.head]

	torso := r.ri.NewBone(model.ROLE_CONTROL, nameTorso)
	torso.Head = mrig.Midpoint(org0.Head, org0.Tail)
	mrig.OrientExtension(torso, mmath.UnitY, r.spineLength/mrig.PivotLengthDivisor, false)
	parent := r.rootBone
	if !parent.IsValid() {
		parent = org0.ParentIndex
	}
	r.ri.SetParent(torso.Index(), parent, false)
	r.torso = torso

	hips := r.ri.CopyBone(r.org[r.zones.lower[len(r.zones.lower)-1]], model.ROLE_CONTROL, nameHips)
	mrig.OrientExtension(hips, mmath.UnitY, r.spineLength/mrig.HipsLengthDivisor, true)
	r.ri.SetParent(hips.Index(), torso.Index(), false)
	r.hips = hips

	if len(r.zones.upper) > 0 {
		chest := r.ri.CopyBone(r.org[r.zones.upper[0]], model.ROLE_CONTROL, nameChest)
		mrig.OrientExtension(chest, mmath.UnitY, r.spineLength/mrig.ChestLengthDivisor, false)
		r.ri.SetParent(chest.Index(), torso.Index(), false)
		r.chest = chest
	} else {
		r.ri.Warn(model.RigWarningSubchainMissing, "胸区間が空のため胸コントロールを省略します: %s", r.ri.RootName)
	}

	neckFirst := r.org[r.zones.head]
	if len(r.zones.neck) > 0 {
		neckFirst = r.org[r.zones.neck[0]]
	}
	neck := r.ri.NewBone(model.ROLE_CONTROL, nameNeck)
	mrig.Span(neck, neckFirst.Head, last.Head, neckFirst)
	if neck.Length() <= mmath.Epsilon {
		mrig.OrientExtension(neck, mmath.UnitY, r.spineLength/mrig.NeckLengthDivisor, false)
	}
	r.neck = neck

	head := r.ri.CopyBone(last, model.ROLE_CONTROL, nameHead)
	r.head = head
}

// buildMechanisms は区分ごとの機構チェーンと首・頭の回転機構を作る。
func (r *torsoRig) buildMechanisms() {
	pivot := r.ri.CopyBone(r.torso, model.ROLE_MECHANISM, namePivot)
	mrig.ShrinkLength(pivot, mrig.QuarterLength)
	r.ri.SetParent(pivot.Index(), r.torso.Index(), false)
	r.pivot = pivot

	lower := make([]int, 0, len(r.zones.lower))
	for i := len(r.zones.lower) - 1; i >= 0; i-- {
		lower = append(lower, r.zones.lower[i])
	}
	r.buildZoneChain(lower, pivot, r.hips)
	r.upperEnd = pivot
	if r.chest != nil {
		r.upperEnd = r.buildZoneChain(r.zones.upper, pivot, r.chest)
	}

	constrain := r.ri.Constrain()
	neckFirst := r.org[r.zones.head]
	if len(r.zones.neck) > 0 {
		neckFirst = r.org[r.zones.neck[0]]
	}
	rotNeck := r.ri.CopyBone(neckFirst, model.ROLE_MECHANISM, naming.WithTag(nameNeck, tagRot))
	mrig.ShrinkLength(rotNeck, mrig.HalfLength)
	r.ri.SetParent(rotNeck.Index(), r.upperEnd.Index(), false)
	r.neckRot[0] = constrain.CopyRotation(rotNeck.Index(), r.upperEnd.Index(), mrig.WithName("follow"))
	r.neckRot[1] = constrain.CopyRotation(rotNeck.Index(), r.torso.Index(), mrig.WithName("free"))
	r.rotNeck = rotNeck
	r.ri.SetParent(r.neck.Index(), rotNeck.Index(), false)

	r.neckEnd = r.buildZoneChain(r.zones.neck, rotNeck, r.neck)
	if r.neckEnd == nil {
		r.neckEnd = r.neck
	}

	rotHead := r.ri.CopyBone(r.org[r.zones.head], model.ROLE_MECHANISM, naming.WithTag(nameHead, tagRot))
	mrig.ShrinkLength(rotHead, mrig.HalfLength)
	r.ri.SetParent(rotHead.Index(), r.neckEnd.Index(), false)
	r.headRot[0] = constrain.CopyRotation(rotHead.Index(), r.neck.Index(), mrig.WithName("follow"))
	r.headRot[1] = constrain.CopyRotation(rotHead.Index(), r.torso.Index(), mrig.WithName("free"))
	r.rotHead = rotHead
	r.ri.SetParent(r.head.Index(), rotHead.Index(), false)
}

// buildZoneChain は区分の機構チェーンを作る。影響度は近位から遠位へ (k+1)/m で増加する。
func (r *torsoRig) buildZoneChain(indexes []int, first, control *model.Bone) *model.Bone {
	var previous *model.Bone
	count := len(indexes)
	for k, index := range indexes {
		org := r.org[index]
		mch := r.ri.CopyBone(org, model.ROLE_MECHANISM, org.Name)
		mrig.ShrinkLength(mch, mrig.HalfLength)
		parent := first
		if previous != nil {
			parent = previous
		}
		r.ri.SetParent(mch.Index(), parent.Index(), false)
		r.ri.Constrain().CopyTransforms(mch.Index(), control.Index(),
			mrig.WithInfluence(float64(k+1)/float64(count)))
		r.mch[index] = mch
		previous = mch
	}
	return previous
}

// buildTweaks は元ボーンごとの微調整ボーンを作り、元ボーンを追従させる。
func (r *torsoRig) buildTweaks() {
	layers, hasLayers := r.ri.Params.Layers(paramTweakLayers)
	for i, org := range r.org {
		tweak := r.ri.CopyBone(org, model.ROLE_TWEAK, org.Name)
		mrig.ShrinkLength(tweak, mrig.HalfLength)
		if hasLayers {
			tweak.Layers = layers
		}
		parent := r.head
		if mch, ok := r.mch[i]; ok {
			parent = mch
		}
		r.ri.SetParent(tweak.Index(), parent.Index(), false)
		r.tweaks = append(r.tweaks, tweak)
	}

	constrain := r.ri.Constrain()
	for i, org := range r.org {
		constrain.CopyTransforms(org.Index(), r.tweaks[i].Index())
		if i+1 < len(r.tweaks) {
			constrain.DampedTrack(org.Index(), r.tweaks[i+1].Index())
			constrain.StretchTo(org.Index(), r.tweaks[i+1].Index())
		}
	}
}

// bindProperties は首・頭の追従率を torso コントロールへ公開して結線する。
func (r *torsoRig) bindProperties() {
	owner := r.torso.Index()
	drive := r.ri.Drive()
	neck := drive.Expose(owner, model.NewRateProperty(model.PropNeckFollow, defaultNeckFollow, "Neck follows torso"))
	head := drive.Expose(owner, model.NewRateProperty(model.PropHeadFollow, defaultHeadFollow, "Head follows neck"))

	drive.Average(r.rotNeck.Index(), r.neckRot[0], neck)
	drive.Polynomial(r.rotNeck.Index(), r.neckRot[1], []float64{1, -1}, neck)
	drive.Average(r.rotHead.Index(), r.headRot[0], head)
	drive.Polynomial(r.rotHead.Index(), r.headRot[1], []float64{1, -1}, head)

	r.ri.AddUIRow(owner, model.PropNeckFollow, model.LabelNeckFollow)
	r.ri.AddUIRow(owner, model.PropHeadFollow, model.LabelHeadFollow)
}

// logTorsoDebug は胴体リグ生成のDEBUGログを出力する。
func logTorsoDebug(format string, params ...any) {
	logger := mlogging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Debug(format, params...)
	if logger.IsVerboseEnabled(mlogging.VERBOSE_INDEX_RIG) {
		logger.Verbose(mlogging.VERBOSE_INDEX_RIG, "[DEBUG] "+format, params...)
	}
}
