// 指示: miu200521358
// Package finger は指・親指の巻き込みリグを生成する。
package finger

import (
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/merrors"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/model"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/naming"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/infra/mlogging"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/mrig"
)

const (
	paramPrimaryAxis = "primary_rotation_axis"
	paramLayers      = "layers"
	masterSuffix     = "_master"
	minChainLength   = 2
)

// Builder は指リグの生成器。親指は既定の回転軸だけが異なる。
type Builder struct {
	kind        model.FeatureKind
	defaultAxis model.Axis
}

// NewFinger は指リグ生成器を生成する。
func NewFinger() *Builder {
	return &Builder{kind: model.FEATURE_FINGER, defaultAxis: model.AXIS_X}
}

// NewThumb は親指リグ生成器を生成する。
func NewThumb() *Builder {
	return &Builder{kind: model.FEATURE_THUMB, defaultAxis: model.AXIS_Z}
}

// Kind は機能種別を返す。
func (b *Builder) Kind() model.FeatureKind {
	return b.kind
}

// CurlChain は指型チェーンの生成結果を表す。触手リグからも使う。
type CurlChain struct {
	Master     *model.Bone
	Controls   []*model.Bone
	Mechanisms []*model.Bone
}

// Generate は指リグを生成する。
func (b *Builder) Generate(sk *model.Skeleton, root model.BoneIndex, options mrig.GenerateOptions) (*mrig.RigInstance, error) {
	ri, err := mrig.NewRigInstance(sk, b.kind, root)
	if err != nil {
		return nil, err
	}
	chain := mrig.ConnectedChain(sk, root, 0)
	if len(chain) < minChainLength {
		return nil, merrors.NewStructuralError(string(b.kind), ri.RootName,
			"チェーンは %d 区間以上が必要です: got=%d", minChainLength, len(chain))
	}
	ri.Source = chain

	axis := ri.Params.Axis(paramPrimaryAxis, b.defaultAxis)
	curl := BuildCurlChain(ri, chain, axis)
	if layers, ok := ri.Params.Layers(paramLayers); ok {
		curl.Master.Layers = layers
		for _, ctrl := range curl.Controls {
			ctrl.Layers = layers
		}
	}
	for i, index := range chain {
		ri.Constrain().CopyTransforms(index, curl.Controls[i].Index())
	}

	if err := ri.Err(); err != nil {
		return nil, err
	}
	logFingerDebug("指リグ生成: root=%s kind=%s segments=%d axis=%s", ri.RootName, b.kind, len(chain), axis)
	return ri, nil
}

// MasterName は先頭ボーン名からマスターコントロールの基底名を返す。
func MasterName(name string) string {
	return naming.WithSide(naming.BaseStem(name)+masterSuffix, naming.SideOf(name))
}

// BuildCurlChain はマスター・コントロール・機構を交互に親子付けしたチェーンを作る。
// 機構 i は前段コントロールの子となり、その回転を主軸のみローカルで加算する。
func BuildCurlChain(ri *mrig.RigInstance, chain []model.BoneIndex, axis model.Axis) CurlChain {
	org := make([]*model.Bone, 0, len(chain))
	for _, index := range chain {
		org = append(org, ri.Bone(index))
	}
	org0 := org[0]

	master := ri.NewBone(model.ROLE_CONTROL, MasterName(org0.Name))
	master.Head = org0.Head
	master.Tail = org0.Head.Added(org0.Direction().MuledScalar(mrig.ChainLength(ri.Skeleton(), chain)))
	master.Roll = org0.Roll
	ri.SetParent(master.Index(), org0.ParentIndex, false)

	result := CurlChain{Master: master}
	for _, bone := range org {
		ctrl := ri.CopyBone(bone, model.ROLE_CONTROL, bone.Name)
		result.Controls = append(result.Controls, ctrl)
	}
	for i, bone := range org {
		mch := ri.CopyBone(bone, model.ROLE_MECHANISM, bone.Name)
		mrig.ShrinkLength(mch, mrig.HalfLength)
		if i == 0 {
			ri.SetParent(mch.Index(), master.Index(), false)
		} else {
			previous := result.Controls[i-1]
			ri.SetParent(mch.Index(), previous.Index(), bone.Connected)
			options := []mrig.ConstraintOption{
				mrig.WithLocalSpace(),
				mrig.WithOffset(),
				mrig.WithAxes(axis.Mask()),
			}
			if axis.IsNegative() {
				options = append(options, mrig.WithInvert(axis.Mask()))
			}
			ri.Constrain().CopyRotation(mch.Index(), previous.Index(), options...)
		}
		ri.SetParent(result.Controls[i].Index(), mch.Index(), false)
		result.Mechanisms = append(result.Mechanisms, mch)
	}
	return result
}

// logFingerDebug は指リグ生成のDEBUGログを出力する。
func logFingerDebug(format string, params ...any) {
	logger := mlogging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Debug(format, params...)
	if logger.IsVerboseEnabled(mlogging.VERBOSE_INDEX_RIG) {
		logger.Verbose(mlogging.VERBOSE_INDEX_RIG, "[DEBUG] "+format, params...)
	}
}
