// 指示: miu200521358
// Package ring は口や瞼のような閉じた輪のリグを生成する。
package ring

import (
	"math"

	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/merrors"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/model"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/naming"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/infra/mlogging"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/mrig"
	"gonum.org/v1/gonum/floats"
)

const (
	paramMirror     = "mirror"
	paramUseStretch = "use_stretch"
	paramLayers     = "layers"
	quarterCount    = 4
	minRingLength   = 4
)

// Builder は輪リグの生成器。
type Builder struct{}

// New は輪リグ生成器を生成する。
func New() *Builder {
	return &Builder{}
}

// Kind は機能種別を返す。
func (b *Builder) Kind() model.FeatureKind {
	return model.FEATURE_RING
}

// Generate は輪リグを生成する。
func (b *Builder) Generate(sk *model.Skeleton, root model.BoneIndex, options mrig.GenerateOptions) (*mrig.RigInstance, error) {
	ri, err := mrig.NewRigInstance(sk, model.FEATURE_RING, root)
	if err != nil {
		return nil, err
	}
	loop, err := collectLoop(ri)
	if err != nil {
		return nil, err
	}
	ri.Source = loop

	controls := buildControls(ri, loop)
	wireQuarterRamps(ri, controls)
	buildMechanisms(ri, loop, controls)

	if err := ri.Err(); err != nil {
		return nil, err
	}
	logRingDebug("輪リグ生成: root=%s segments=%d mirror=%t", ri.RootName, len(loop), ri.Params.Bool(paramMirror, false))
	return ri, nil
}

// collectLoop は輪の元ボーンを輪順に集める。
// 左右対称指定では片側チェーンの後に反対側チェーンを逆順で連結する。
func collectLoop(ri *mrig.RigInstance) ([]model.BoneIndex, error) {
	sk := ri.Skeleton()
	feature := string(model.FEATURE_RING)
	loop := mrig.ConnectedChain(sk, ri.Root, 0)
	if ri.Params.Bool(paramMirror, false) {
		mirrorName, ok := naming.MirrorName(ri.RootName)
		if !ok {
			return nil, merrors.NewStructuralError(feature, ri.RootName, "左右対称指定のルートに左右表記がありません")
		}
		mirrorRoot := sk.IndexOf(mirrorName)
		if !mirrorRoot.IsValid() {
			return nil, merrors.NewStructuralError(feature, ri.RootName, "反対側のチェーンがありません: %s", mirrorName)
		}
		other := mrig.ConnectedChain(sk, mirrorRoot, 0)
		if len(other) != len(loop) {
			return nil, merrors.NewStructuralError(feature, ri.RootName,
				"左右のチェーン長が一致しません: %d != %d", len(loop), len(other))
		}
		for i := len(other) - 1; i >= 0; i-- {
			loop = append(loop, other[i])
		}
	}
	if len(loop) < minRingLength {
		return nil, merrors.NewStructuralError(feature, ri.RootName,
			"輪は %d 区間より多く必要です: got=%d", minRingLength-1, len(loop))
	}
	return loop, nil
}

// buildControls は元ボーンごとのコントロールを重心から外側へ押し出して作る。
func buildControls(ri *mrig.RigInstance, loop []model.BoneIndex) []*model.Bone {
	sk := ri.Skeleton()
	centroid := mrig.Centroid(sk, loop)
	layers, hasLayers := ri.Params.Layers(paramLayers)
	parent := ri.Bone(ri.Root).ParentIndex

	controls := make([]*model.Bone, 0, len(loop))
	for _, index := range loop {
		org := ri.Bone(index)
		ctrl := ri.CopyBone(org, model.ROLE_CONTROL, org.Name)
		outward := org.Head.Subed(centroid).Normalized()
		mrig.MoveHead(ctrl, org.Head.Added(outward.MuledScalar(org.Length()*mrig.QuarterLength)))
		if hasLayers {
			ctrl.Layers = layers
		}
		ri.SetParent(ctrl.Index(), parent, false)
		controls = append(controls, ctrl)
	}
	return controls
}

// QuarterBoundaries は n 個の輪を4分割する境界位置 round(k*n/4) を返す。
func QuarterBoundaries(n int) []int {
	out := make([]int, 0, quarterCount)
	for k := 0; k < quarterCount; k++ {
		out = append(out, int(math.Round(float64(k*n)/quarterCount)))
	}
	return out
}

// arcPositions は先頭コントロールからの周方向累積距離を返す。末尾は一周長。
func arcPositions(controls []*model.Bone) []float64 {
	n := len(controls)
	segments := make([]float64, n+1)
	for i := 0; i < n; i++ {
		segments[i+1] = controls[i].Head.Distance(controls[(i+1)%n].Head)
	}
	return floats.CumSum(make([]float64, n+1), segments)
}

// rampWeight は境界 from から to までの区間で位置 j が占める割合を返す。
// 周長が得られない場合は番号比で代替する。
func rampWeight(arc []float64, from, to, j int) float64 {
	span := arc[to] - arc[from]
	if span > 0 {
		return (arc[j] - arc[from]) / span
	}
	return float64(j-from) / float64(to-from)
}

// wireQuarterRamps は境界以外のコントロールへ両端境界への COPY_LOCATION を付与する。
func wireQuarterRamps(ri *mrig.RigInstance, controls []*model.Bone) {
	n := len(controls)
	bounds := append(QuarterBoundaries(n), n)
	arc := arcPositions(controls)
	constrain := ri.Constrain()
	for k := 0; k < quarterCount; k++ {
		from, to := bounds[k], bounds[k+1]
		for j := from + 1; j < to; j++ {
			t := rampWeight(arc, from, to, j)
			owner := controls[j].Index()
			constrain.CopyLocation(owner, controls[from].Index(),
				mrig.WithLocalSpace(), mrig.WithOffset(), mrig.WithInfluence(1-t))
			constrain.CopyLocation(owner, controls[to%n].Index(),
				mrig.WithLocalSpace(), mrig.WithOffset(), mrig.WithInfluence(t))
		}
	}
}

// buildMechanisms は次のコントロールを向く機構を作り、元ボーンを追従させる。
func buildMechanisms(ri *mrig.RigInstance, loop []model.BoneIndex, controls []*model.Bone) {
	n := len(loop)
	useStretch := ri.Params.Bool(paramUseStretch, false)
	constrain := ri.Constrain()
	for i, index := range loop {
		org := ri.Bone(index)
		mch := ri.CopyBone(org, model.ROLE_MECHANISM, org.Name)
		ri.SetParent(mch.Index(), controls[i].Index(), false)
		next := controls[(i+1)%n].Index()
		constrain.DampedTrack(mch.Index(), next)
		if useStretch {
			constrain.StretchTo(mch.Index(), next)
		}
		constrain.CopyTransforms(index, mch.Index())
	}
}

// logRingDebug は輪リグ生成のDEBUGログを出力する。
func logRingDebug(format string, params ...any) {
	logger := mlogging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Debug(format, params...)
	if logger.IsVerboseEnabled(mlogging.VERBOSE_INDEX_RIG) {
		logger.Verbose(mlogging.VERBOSE_INDEX_RIG, "[DEBUG] "+format, params...)
	}
}
