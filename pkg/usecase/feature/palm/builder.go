// 指示: miu200521358
// Package palm は手のひらの広がりリグを生成する。
package palm

import (
	"math"

	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/merrors"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/model"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/naming"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/infra/mlogging"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/mrig"
)

const (
	paramRotationAxis = "palm_rotation_axis"
	paramLayers       = "layers"
	minPalmCount      = 2
)

// Builder は手のひらリグの生成器。
type Builder struct{}

// New は手のひらリグ生成器を生成する。
func New() *Builder {
	return &Builder{}
}

// Kind は機能種別を返す。
func (b *Builder) Kind() model.FeatureKind {
	return model.FEATURE_PALM
}

// LocationInfluence は i 番目の移動追従率 i/n を返す。
func LocationInfluence(i, n int) float64 {
	return float64(i) / float64(n)
}

// RotationInfluence は i 番目の回転追従率 i/n - (1 - cos(iπ/2n)) を返す。
func RotationInfluence(i, n int) float64 {
	return LocationInfluence(i, n) - (1 - math.Cos(float64(i)*math.Pi/float64(2*n)))
}

// Generate は手のひらリグを生成する。
func (b *Builder) Generate(sk *model.Skeleton, root model.BoneIndex, options mrig.GenerateOptions) (*mrig.RigInstance, error) {
	ri, err := mrig.NewRigInstance(sk, model.FEATURE_PALM, root)
	if err != nil {
		return nil, err
	}
	axis, err := ri.Params.LookupAxis(paramRotationAxis, model.AXIS_X)
	if err != nil {
		return nil, merrors.NewStructuralError(string(model.FEATURE_PALM), ri.RootName, "%v", err)
	}
	if axis != model.AXIS_X && axis != model.AXIS_Z {
		return nil, merrors.NewStructuralError(string(model.FEATURE_PALM), ri.RootName,
			"回転軸は X か Z のみ指定できます: %s", axis)
	}
	palms := collectPalms(sk, root)
	if len(palms) < minPalmCount {
		return nil, merrors.NewStructuralError(string(model.FEATURE_PALM), ri.RootName,
			"同じ親を持つ手のひらボーンが %d 本以上必要です: got=%d", minPalmCount, len(palms))
	}
	ri.Source = palms

	far := ri.Bone(palms[len(palms)-1])
	rootBone := ri.Bone(root)
	ctrl := ri.CopyBone(far, model.ROLE_CONTROL,
		naming.WithSide(naming.BaseStem(rootBone.Name), naming.SideOf(rootBone.Name)))
	ri.SetParent(ctrl.Index(), rootBone.ParentIndex, false)
	if layers, ok := ri.Params.Layers(paramLayers); ok {
		ctrl.Layers = layers
	}

	n := len(palms)
	constrain := ri.Constrain()
	for i, index := range palms {
		constrain.CopyLocation(index, ctrl.Index(),
			mrig.WithLocalSpace(), mrig.WithOffset(), mrig.WithInfluence(LocationInfluence(i, n)))
		constrain.CopyScale(index, ctrl.Index(),
			mrig.WithLocalSpace(), mrig.WithOffset())
		constrain.CopyRotation(index, ctrl.Index(),
			mrig.WithLocalSpace(), mrig.WithOffset(), mrig.WithAxes(axis.Mask()),
			mrig.WithInfluence(RotationInfluence(i, n)))
	}

	if err := ri.Err(); err != nil {
		return nil, err
	}
	logPalmDebug("手のひらリグ生成: root=%s palms=%d axis=%s", ri.RootName, n, axis)
	return ri, nil
}

// collectPalms はルートと同じ語幹・左右を持つ兄弟をルートからの距離順に集める。
func collectPalms(sk *model.Skeleton, root model.BoneIndex) []model.BoneIndex {
	rootName := sk.NameOf(root)
	stem := naming.BaseStem(rootName)
	side := naming.SideOf(rootName)
	palms := make([]model.BoneIndex, 0, 4)
	for _, index := range mrig.Siblings(sk, root) {
		name := sk.NameOf(index)
		if naming.BaseStem(name) == stem && naming.SideOf(name) == side {
			palms = append(palms, index)
		}
	}
	return mrig.SortByDistance(sk, palms, root)
}

// logPalmDebug は手のひらリグ生成のDEBUGログを出力する。
func logPalmDebug(format string, params ...any) {
	logger := mlogging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Debug(format, params...)
	if logger.IsVerboseEnabled(mlogging.VERBOSE_INDEX_RIG) {
		logger.Verbose(mlogging.VERBOSE_INDEX_RIG, "[DEBUG] "+format, params...)
	}
}
