// 指示: miu200521358
// Package face は名前付きサブチェーン群から顔リグを生成する。
package face

import (
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/merrors"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/model"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/infra/mlogging"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/mrig"
)

const (
	paramPrimaryLayers   = "primary_layers"
	paramSecondaryLayers = "secondary_layers"
)

// Builder は顔リグの生成器。
type Builder struct{}

// New は顔リグ生成器を生成する。
func New() *Builder {
	return &Builder{}
}

// Kind は機能種別を返す。
func (b *Builder) Kind() model.FeatureKind {
	return model.FEATURE_FACE
}

// subChain は探索で見つかったサブチェーン。
type subChain struct {
	def      subChainDef
	bones    []model.BoneIndex
	terminal model.BoneIndex
}

// faceRig は顔リグ1インスタンス分の生成状態。
type faceRig struct {
	ri      *mrig.RigInstance
	root    *model.Bone
	options mrig.GenerateOptions
	chains  map[string]*subChain
	tweaks  *tweakPlan
	anchors map[string]*model.Bone

	jawMaster  *model.Bone
	jawLevels  []*model.Bone
	eyesMaster *model.Bone
	follows    map[string][]constraintRef
}

// Generate は顔リグを生成する。見つからないサブチェーンは警告を残して省略する。
func (b *Builder) Generate(sk *model.Skeleton, root model.BoneIndex, options mrig.GenerateOptions) (*mrig.RigInstance, error) {
	ri, err := mrig.NewRigInstance(sk, model.FEATURE_FACE, root)
	if err != nil {
		return nil, err
	}
	f := &faceRig{
		ri:      ri,
		root:    ri.Bone(root),
		options: options,
		anchors: map[string]*model.Bone{},
		follows: map[string][]constraintRef{},
	}
	if err := f.collect(); err != nil {
		return nil, err
	}

	f.planTweaks()
	f.commitTweaks()
	f.buildJaw()
	f.buildChin()
	f.buildTongue()
	f.buildNose()
	f.buildEars()
	f.buildEyes()
	f.applySpecialParents()
	f.wireSources()
	f.bindFollowDrivers()

	if err := ri.Err(); err != nil {
		return nil, err
	}
	logFaceDebug("顔リグ生成: root=%s subchains=%d tweaks=%d warnings=%d",
		ri.RootName, len(f.chains), len(f.tweaks.order), len(ri.Warnings))
	return ri, nil
}

// collect は表の順にサブチェーンを探索する。1本も無ければ構造エラー。
func (f *faceRig) collect() error {
	sk := f.ri.Skeleton()
	f.chains = map[string]*subChain{}
	for _, def := range subChainTable {
		from := f.root.Index()
		if def.SearchFrom != "" {
			if parent, ok := f.chains[def.SearchFrom]; ok {
				from = parent.terminal
			}
		}
		bones, terminal := mrig.PrefixChain(sk, from, def.Key)
		if len(bones) == 0 && from != f.root.Index() {
			bones, terminal = mrig.PrefixChain(sk, f.root.Index(), def.Key)
		}
		if len(bones) == 0 {
			f.ri.Warn(model.RigWarningSubchainMissing, "サブチェーンがありません: %s", def.Key)
			logFaceVerbose("サブチェーン省略: root=%s key=%s", f.ri.RootName, def.Key)
			continue
		}
		f.chains[def.Key] = &subChain{def: def, bones: bones, terminal: terminal}
		f.ri.Source = append(f.ri.Source, bones...)
	}
	if len(f.chains) == 0 {
		return merrors.NewStructuralError(string(model.FEATURE_FACE), f.ri.RootName,
			"顔ルート配下にサブチェーンが1本もありません")
	}
	return nil
}

// tweakChains はツイーク対象のサブチェーンを表の順で返す。
func (f *faceRig) tweakChains() []*subChain {
	out := make([]*subChain, 0, len(f.chains))
	for _, def := range subChainTable {
		if chain, ok := f.chains[def.Key]; ok && def.Tweaks {
			out = append(out, chain)
		}
	}
	return out
}

// chain はサブチェーンを返す。無い場合は nil。
func (f *faceRig) chain(key string) *subChain {
	return f.chains[key]
}

// layersOf は区分ごとの表示レイヤー指定を返す。
func (f *faceRig) layersOf(group LayerGroup) (model.Layers, bool) {
	if group == LAYER_PRIMARY {
		return f.ri.Params.Layers(paramPrimaryLayers)
	}
	return f.ri.Params.Layers(paramSecondaryLayers)
}

// anchor は固定親子表から引けるよう生成ボーンを予定名で登録する。
func (f *faceRig) anchor(name string, bone *model.Bone) {
	f.anchors[name] = bone
}

// applySpecialParents は固定親子表を適用する。
func (f *faceRig) applySpecialParents() {
	for _, rule := range specialParents {
		child, ok := f.anchors[rule.Child]
		if !ok {
			continue
		}
		parent, ok := f.anchors[rule.Parent]
		if !ok {
			continue
		}
		f.ri.SetParent(child.Index(), parent.Index(), false)
		logFaceVerbose("固定親子: %s -> %s", child.Name, parent.Name)
	}
}

// logFaceDebug は顔リグ生成のDEBUGログを出力する。
func logFaceDebug(format string, params ...any) {
	logger := mlogging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Debug(format, params...)
	if logger.IsVerboseEnabled(mlogging.VERBOSE_INDEX_RIG) {
		logger.Verbose(mlogging.VERBOSE_INDEX_RIG, "[DEBUG] "+format, params...)
	}
}

// logFaceVerbose は顔リグ詳細の冗長ログを出力する。
func logFaceVerbose(format string, params ...any) {
	logger := mlogging.DefaultLogger()
	if logger == nil || !logger.IsVerboseEnabled(mlogging.VERBOSE_INDEX_FACE) {
		return
	}
	logger.Verbose(mlogging.VERBOSE_INDEX_FACE, format, params...)
}
