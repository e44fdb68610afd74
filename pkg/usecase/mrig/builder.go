// 指示: miu200521358
package mrig

import "github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/model"

// GenerateOptions は全機能共通の生成設定を表す。
type GenerateOptions struct {
	// RootBoneName は追従先として使うルートボーン名。
	RootBoneName string
}

// IFeatureBuilder は機能ルート1つ分のリグを生成する。
// 最小構成を満たさない場合はボーンを作る前に StructuralError を返す。
type IFeatureBuilder interface {
	Kind() model.FeatureKind
	Generate(sk *model.Skeleton, root model.BoneIndex, options GenerateOptions) (*RigInstance, error)
}

// RootBone は追従先ルートボーンを返す。存在しない場合は NoBone。
func (o GenerateOptions) RootBone(sk *model.Skeleton) model.BoneIndex {
	if o.RootBoneName == "" {
		return model.NoBone
	}
	return sk.IndexOf(o.RootBoneName)
}
