// 指示: miu200521358
package mrig

import (
	"errors"
	"fmt"

	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/model"
)

// Warning は生成時の警告を表す。
type Warning struct {
	ID      string
	Message string
}

// RigInstance は1機能ルートに対する生成結果を保持する。
type RigInstance struct {
	Kind      model.FeatureKind
	Root      model.BoneIndex
	RootName  string
	Source    []model.BoneIndex
	Params    model.Params
	Generated map[model.Role][]model.BoneIndex
	Warnings  []Warning
	UIRows    []model.UIRow

	sk          *model.Skeleton
	constraints *ConstraintBuilder
	drivers     *DriverBinder
	errors      []error
}

// NewRigInstance は機能ルートを起点とする生成セッションを開始する。
func NewRigInstance(sk *model.Skeleton, kind model.FeatureKind, root model.BoneIndex) (*RigInstance, error) {
	rootBone, err := sk.Get(root)
	if err != nil {
		return nil, fmt.Errorf("機能ルートが見つかりません: %w", err)
	}
	params := rootBone.Params
	if params == nil {
		params = model.Params{}
	}
	return &RigInstance{
		Kind:        kind,
		Root:        root,
		RootName:    rootBone.Name,
		Params:      params,
		Generated:   map[model.Role][]model.BoneIndex{},
		sk:          sk,
		constraints: NewConstraintBuilder(sk),
		drivers:     NewDriverBinder(sk),
	}, nil
}

// Skeleton は対象スケルトンを返す。
func (r *RigInstance) Skeleton() *model.Skeleton {
	return r.sk
}

// Constrain はコンストレイント配線器を返す。
func (r *RigInstance) Constrain() *ConstraintBuilder {
	return r.constraints
}

// Drive はドライバー結線器を返す。
func (r *RigInstance) Drive() *DriverBinder {
	return r.drivers
}

// Bone は番号指定でボーンを返す。存在しない場合は nil。
func (r *RigInstance) Bone(index model.BoneIndex) *model.Bone {
	bone, err := r.sk.Get(index)
	if err != nil {
		return nil
	}
	return bone
}

// NewBone は役割付きのボーンを生成し、生成一覧へ記録する。
func (r *RigInstance) NewBone(role model.Role, base string) *model.Bone {
	bone := r.sk.NewBone(role, base)
	r.Generated[role] = append(r.Generated[role], bone.Index())
	return bone
}

// CopyBone は元ボーンの形状を複写したボーンを生成する。
func (r *RigInstance) CopyBone(src *model.Bone, role model.Role, base string) *model.Bone {
	bone := r.sk.CopyBone(src, role, base)
	r.Generated[role] = append(r.Generated[role], bone.Index())
	return bone
}

// SetParent は親子関係を設定する。失敗は記録してまとめて返す。
func (r *RigInstance) SetParent(child, parent model.BoneIndex, connected bool) {
	if err := r.sk.SetParent(child, parent, connected); err != nil {
		r.errors = append(r.errors, fmt.Errorf("親設定に失敗しました: %s: %w", r.sk.NameOf(child), err))
	}
}

// Warn は警告を記録する。
func (r *RigInstance) Warn(id string, format string, params ...any) {
	r.Warnings = append(r.Warnings, Warning{ID: id, Message: fmt.Sprintf(format, params...)})
}

// AddUIRow はパネル行を追加する。
func (r *RigInstance) AddUIRow(owner model.BoneIndex, property, label string) {
	r.UIRows = append(r.UIRows, model.UIRow{Bone: r.sk.NameOf(owner), Property: property, Label: label})
}

// GeneratedNames は役割ごとの生成ボーン名を生成順で返す。
func (r *RigInstance) GeneratedNames(role model.Role) []string {
	names := make([]string, 0, len(r.Generated[role]))
	for _, index := range r.Generated[role] {
		names = append(names, r.sk.NameOf(index))
	}
	return names
}

// GeneratedCount は役割ごとの生成数を返す。
func (r *RigInstance) GeneratedCount(role model.Role) int {
	return len(r.Generated[role])
}

// TotalGenerated は生成ボーン総数を返す。
func (r *RigInstance) TotalGenerated() int {
	total := 0
	for _, bones := range r.Generated {
		total += len(bones)
	}
	return total
}

// Err は生成中の失敗をまとめて返す。
func (r *RigInstance) Err() error {
	all := append([]error{}, r.errors...)
	if err := r.constraints.Err(); err != nil {
		all = append(all, err)
	}
	if err := r.drivers.Err(); err != nil {
		all = append(all, err)
	}
	return joinErrors(all)
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
