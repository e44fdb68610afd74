// 指示: miu200521358
// Package io_rig はメタリグ文書の読み込みと生成済みリグ文書の保存を提供する。
package io_rig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/mmath"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/model"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/infra/mlogging"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// LoadProgressEventType はメタリグ読込進捗イベント種別を表す。
type LoadProgressEventType string

const (
	// LoadProgressEventTypeFileReadComplete はファイル読込完了イベントを表す。
	LoadProgressEventTypeFileReadComplete LoadProgressEventType = "file_read_complete"
	// LoadProgressEventTypeDocumentParsed は文書解析完了イベントを表す。
	LoadProgressEventTypeDocumentParsed LoadProgressEventType = "document_parsed"
	// LoadProgressEventTypeCompleted はメタリグ読込完了イベントを表す。
	LoadProgressEventTypeCompleted LoadProgressEventType = "completed"
)

// LoadProgressEvent はメタリグ読込進捗イベントを表す。
type LoadProgressEvent struct {
	Type          LoadProgressEventType
	FileSizeBytes int
	BoneCount     int
}

// MetarigRepository はメタリグ文書の読み込みを表す。
type MetarigRepository struct {
	loadProgressReporter func(LoadProgressEvent)
}

// NewMetarigRepository は MetarigRepository を生成する。
func NewMetarigRepository() *MetarigRepository {
	return &MetarigRepository{}
}

// SetLoadProgressReporter は読込進捗受信コールバックを設定する。
func (r *MetarigRepository) SetLoadProgressReporter(reporter func(LoadProgressEvent)) {
	if r == nil {
		return
	}
	r.loadProgressReporter = reporter
}

// CanLoad は拡張子に応じて読み込み可否を判定する。JSON は YAML として解析する。
func (r *MetarigRepository) CanLoad(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}

// InferName はパスから表示名を推定する。
func (r *MetarigRepository) InferName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Load はメタリグ文書を読み込んでスケルトンを構築する。
func (r *MetarigRepository) Load(path string) (*model.Skeleton, error) {
	if !r.CanLoad(path) {
		return nil, NewIoExtInvalid(path, nil)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewIoFileNotFound(path, err)
		}
		return nil, NewIoParseFailed("メタリグファイルの読み取りに失敗しました", err)
	}
	r.reportLoadProgress(LoadProgressEvent{Type: LoadProgressEventTypeFileReadComplete, FileSizeBytes: len(b)})

	sk, err := r.Parse(b, r.InferName(path))
	if err != nil {
		return nil, err
	}
	r.reportLoadProgress(LoadProgressEvent{
		Type:          LoadProgressEventTypeCompleted,
		FileSizeBytes: len(b),
		BoneCount:     sk.Len(),
	})
	logIoRigInfo("メタリグ読込完了: file=%s bones=%d", filepath.Base(path), sk.Len())
	return sk, nil
}

// Parse は文書バイト列からスケルトンを構築する。名前が無い文書は fallbackName を使う。
// ボーン名は NFC 正規化する。親は名前で解決するため文書内の順序は問わない。
func (r *MetarigRepository) Parse(data []byte, fallbackName string) (*model.Skeleton, error) {
	var doc metarigDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, NewIoParseFailed("メタリグ文書の解析に失敗しました", err)
	}
	r.reportLoadProgress(LoadProgressEvent{
		Type:          LoadProgressEventTypeDocumentParsed,
		FileSizeBytes: len(data),
		BoneCount:     len(doc.Bones),
	})

	name := norm.NFC.String(strings.TrimSpace(doc.Name))
	if name == "" {
		name = fallbackName
	}
	sk := model.NewSkeleton(name)
	for i, item := range doc.Bones {
		bone, err := buildSourceBone(item)
		if err != nil {
			return nil, NewIoParseFailed(fmt.Sprintf("ボーン定義が不正です: index=%d", i), err)
		}
		if _, err := sk.AddBone(bone); err != nil {
			return nil, NewIoParseFailed(fmt.Sprintf("ボーンを追加できません: %s", bone.Name), err)
		}
	}
	for _, item := range doc.Bones {
		parentName := norm.NFC.String(strings.TrimSpace(item.Parent))
		if parentName == "" {
			continue
		}
		child := sk.IndexOf(norm.NFC.String(strings.TrimSpace(item.Name)))
		parent := sk.IndexOf(parentName)
		if !parent.IsValid() {
			return nil, NewIoParseFailed(fmt.Sprintf("親ボーンが見つかりません: %s -> %s", item.Name, parentName), nil)
		}
		if err := sk.SetParent(child, parent, item.Connected); err != nil {
			return nil, NewIoParseFailed("親子関係を設定できません", err)
		}
	}
	return sk, nil
}

// buildSourceBone は文書のボーン定義から元ボーンを生成する。
func buildSourceBone(item metarigBone) (*model.Bone, error) {
	name := norm.NFC.String(strings.TrimSpace(item.Name))
	if name == "" {
		return nil, fmt.Errorf("ボーン名が空です")
	}
	head, err := vec3FromSlice(item.Head)
	if err != nil {
		return nil, fmt.Errorf("%s のヘッド座標: %w", name, err)
	}
	tail, err := vec3FromSlice(item.Tail)
	if err != nil {
		return nil, fmt.Errorf("%s のテール座標: %w", name, err)
	}
	if head.NearEquals(tail, 1e-9) {
		return nil, fmt.Errorf("%s の長さが0です", name)
	}
	bone := model.NewBoneByName(name)
	bone.Head = head
	bone.Tail = tail
	bone.Roll = item.Roll
	bone.Deform = item.Deform == nil || *item.Deform
	bone.Layers = model.LayersOf(item.Layers...)
	bone.RigType = strings.TrimSpace(item.RigType)
	bone.Params = model.Params(item.Params)
	if bone.Params == nil {
		bone.Params = model.Params{}
	}
	return bone, nil
}

// vec3FromSlice は3要素の配列を座標へ変換する。
func vec3FromSlice(values []float64) (mmath.Vec3, error) {
	if len(values) != 3 {
		return mmath.Vec3{}, fmt.Errorf("3要素が必要です: got=%d", len(values))
	}
	return mmath.NewVec3(values[0], values[1], values[2]), nil
}

// reportLoadProgress は読込進捗を通知する。
func (r *MetarigRepository) reportLoadProgress(event LoadProgressEvent) {
	if r == nil || r.loadProgressReporter == nil {
		return
	}
	r.loadProgressReporter(event)
}

// logIoRigInfo は入出力のINFOログを出力する。
func logIoRigInfo(format string, params ...any) {
	logger := mlogging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Info(format, params...)
}
