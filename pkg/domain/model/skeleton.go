// 指示: miu200521358
package model

import (
	"fmt"

	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/merrors"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/naming"
	"github.com/tiendc/go-deepcopy"
)

// Skeleton は名前一意なボーン集合とドライバーを保持する。
type Skeleton struct {
	Name      string
	bones     []*Bone
	nameIndex map[string]BoneIndex
	drivers   []Driver
}

// SkeletonSnapshot はスケルトン状態の複製を保持する。
type SkeletonSnapshot struct {
	bones   []*Bone
	drivers []Driver
}

// NewSkeleton は空のスケルトンを生成する。
func NewSkeleton(name string) *Skeleton {
	return &Skeleton{
		Name:      name,
		bones:     make([]*Bone, 0),
		nameIndex: map[string]BoneIndex{},
		drivers:   make([]Driver, 0),
	}
}

// Len はボーン数を返す。
func (s *Skeleton) Len() int {
	if s == nil {
		return 0
	}
	return len(s.bones)
}

// Values はボーン一覧を登録順で返す。
func (s *Skeleton) Values() []*Bone {
	if s == nil {
		return nil
	}
	out := make([]*Bone, len(s.bones))
	copy(out, s.bones)
	return out
}

// Get は番号指定でボーンを返す。
func (s *Skeleton) Get(index BoneIndex) (*Bone, error) {
	if s == nil || index < 0 || int(index) >= len(s.bones) {
		return nil, merrors.NewBoneNotFoundError(int(index))
	}
	return s.bones[index], nil
}

// GetByName は名前指定でボーンを返す。
func (s *Skeleton) GetByName(name string) (*Bone, error) {
	if s == nil {
		return nil, merrors.NewBoneNotFoundError(name)
	}
	index, ok := s.nameIndex[name]
	if !ok {
		return nil, merrors.NewBoneNotFoundError(name)
	}
	return s.bones[index], nil
}

// Contains は名前が使用済みか判定する。
func (s *Skeleton) Contains(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.nameIndex[name]
	return ok
}

// IndexOf は名前に対応する番号を返す。無い場合は NoBone。
func (s *Skeleton) IndexOf(name string) BoneIndex {
	if s == nil {
		return NoBone
	}
	if index, ok := s.nameIndex[name]; ok {
		return index
	}
	return NoBone
}

// NameOf は番号に対応する名前を返す。無い場合は空文字。
func (s *Skeleton) NameOf(index BoneIndex) string {
	bone, err := s.Get(index)
	if err != nil {
		return ""
	}
	return bone.Name
}

// AddBone はボーンを末尾へ追加する。名前重複時は NameConflictError を返す。
func (s *Skeleton) AddBone(bone *Bone) (BoneIndex, error) {
	if s == nil || bone == nil {
		return NoBone, fmt.Errorf("ボーン追加対象がありません")
	}
	if bone.Name == "" {
		return NoBone, fmt.Errorf("ボーン名が空です")
	}
	if s.Contains(bone.Name) {
		return NoBone, merrors.NewNameConflictError(bone.Name)
	}
	if bone.ParentIndex.IsValid() && int(bone.ParentIndex) >= len(s.bones) {
		return NoBone, merrors.NewBoneNotFoundError(int(bone.ParentIndex))
	}
	if !bone.ParentIndex.IsValid() {
		bone.ParentIndex = NoBone
	}
	index := BoneIndex(len(s.bones))
	bone.index = index
	s.bones = append(s.bones, bone)
	s.nameIndex[bone.Name] = index
	return index, nil
}

// UniqueName は候補名から未使用の名前を解決する。予約は行わない。
func (s *Skeleton) UniqueName(candidate string) string {
	return naming.UniqueName(candidate, s.Contains)
}

// NewBone は役割接頭辞付きの一意名でボーンを生成し、登録する。
func (s *Skeleton) NewBone(role Role, base string) *Bone {
	name := s.UniqueName(naming.Prefixed(role.Prefix(), base))
	bone := NewBoneByName(name)
	bone.Role = role
	bone.Deform = false
	// 一意名で登録するため失敗しない。
	_, _ = s.AddBone(bone)
	return bone
}

// CopyBone は元ボーンの形状を複写した新規ボーンを生成する。親は設定しない。
func (s *Skeleton) CopyBone(src *Bone, role Role, base string) *Bone {
	bone := s.NewBone(role, base)
	bone.CopyGeometry(src)
	bone.Layers = src.Layers
	return bone
}

// SetParent は親子関係を設定する。循環する場合は CycleError を返す。
func (s *Skeleton) SetParent(child, parent BoneIndex, connected bool) error {
	childBone, err := s.Get(child)
	if err != nil {
		return err
	}
	if !parent.IsValid() {
		childBone.ParentIndex = NoBone
		childBone.Connected = false
		return nil
	}
	if _, err := s.Get(parent); err != nil {
		return err
	}
	for cursor := parent; cursor.IsValid(); cursor = s.bones[cursor].ParentIndex {
		if cursor == child {
			return &merrors.CycleError{Child: childBone.Name, Parent: s.bones[parent].Name}
		}
	}
	childBone.ParentIndex = parent
	childBone.Connected = connected
	return nil
}

// Parent は親ボーンを返す。親が無い場合は nil。
func (s *Skeleton) Parent(index BoneIndex) *Bone {
	bone, err := s.Get(index)
	if err != nil || !bone.ParentIndex.IsValid() {
		return nil
	}
	return s.bones[bone.ParentIndex]
}

// Children は直下の子ボーン番号を登録順で返す。
func (s *Skeleton) Children(index BoneIndex) []BoneIndex {
	if s == nil {
		return nil
	}
	children := make([]BoneIndex, 0)
	for _, bone := range s.bones {
		if bone.ParentIndex == index && bone.index != index {
			children = append(children, bone.index)
		}
	}
	return children
}

// Descendants は深さ優先で全子孫を返す。
func (s *Skeleton) Descendants(index BoneIndex) []BoneIndex {
	out := make([]BoneIndex, 0)
	var walk func(BoneIndex)
	walk = func(current BoneIndex) {
		for _, child := range s.Children(current) {
			out = append(out, child)
			walk(child)
		}
	}
	walk(index)
	return out
}

// Roots は親を持たないボーン番号を返す。
func (s *Skeleton) Roots() []BoneIndex {
	return s.Children(NoBone)
}

// CountByRole は役割ごとのボーン数を返す。
func (s *Skeleton) CountByRole(role Role) int {
	count := 0
	for _, bone := range s.bones {
		if bone.Role == role {
			count++
		}
	}
	return count
}

// AddConstraint はコンストレイントを追加し、その番号を返す。
func (s *Skeleton) AddConstraint(owner BoneIndex, constraint Constraint) (int, error) {
	bone, err := s.Get(owner)
	if err != nil {
		return -1, err
	}
	if constraint.Type.RequiresTarget() {
		if _, err := s.Get(constraint.Target); err != nil {
			return -1, fmt.Errorf("コンストレイント対象が不正です: %s %s: %w", bone.Name, constraint.Type, err)
		}
	}
	if constraint.PoleTarget.IsValid() {
		if _, err := s.Get(constraint.PoleTarget); err != nil {
			return -1, fmt.Errorf("ポール対象が不正です: %s: %w", bone.Name, err)
		}
	} else {
		constraint.PoleTarget = NoBone
	}
	if !constraint.Type.RequiresTarget() && !constraint.Target.IsValid() {
		constraint.Target = NoBone
	}
	bone.Constraints = append(bone.Constraints, constraint)
	return len(bone.Constraints) - 1, nil
}

// AddProperty はカスタムプロパティを追加する。同名が存在する場合は置き換える。
func (s *Skeleton) AddProperty(owner BoneIndex, prop PropertyDef) error {
	bone, err := s.Get(owner)
	if err != nil {
		return err
	}
	for i := range bone.Properties {
		if bone.Properties[i].Name == prop.Name {
			bone.Properties[i] = prop
			return nil
		}
	}
	bone.Properties = append(bone.Properties, prop)
	return nil
}

// AddDriver はドライバーを登録する。駆動先と変数参照を検証する。
func (s *Skeleton) AddDriver(driver Driver) error {
	owner, err := s.Get(driver.Target.Bone)
	if err != nil {
		return fmt.Errorf("ドライバー駆動先が不正です: %w", err)
	}
	if driver.Target.Constraint < 0 || driver.Target.Constraint >= len(owner.Constraints) {
		return fmt.Errorf("ドライバー駆動先のコンストレイントがありません: %s[%d]", owner.Name, driver.Target.Constraint)
	}
	if driver.Target.Path == "" {
		driver.Target.Path = DriverInfluencePath
	}
	for _, variable := range driver.Variables {
		bone, err := s.Get(variable.Bone)
		if err != nil {
			return fmt.Errorf("ドライバー変数の参照先が不正です: %s: %w", variable.Name, err)
		}
		if _, ok := bone.Property(variable.Property); !ok {
			return fmt.Errorf("ドライバー変数のプロパティがありません: %s[%s]", bone.Name, variable.Property)
		}
	}
	s.drivers = append(s.drivers, driver)
	return nil
}

// Drivers は登録済みドライバーを返す。
func (s *Skeleton) Drivers() []Driver {
	if s == nil {
		return nil
	}
	out := make([]Driver, len(s.drivers))
	copy(out, s.drivers)
	return out
}

// Snapshot は現在の状態を複製して返す。
func (s *Skeleton) Snapshot() (*SkeletonSnapshot, error) {
	snapshot := &SkeletonSnapshot{}
	if err := deepcopy.Copy(&snapshot.bones, s.bones); err != nil {
		return nil, fmt.Errorf("スケルトンの複製に失敗しました: %w", err)
	}
	if err := deepcopy.Copy(&snapshot.drivers, s.drivers); err != nil {
		return nil, fmt.Errorf("ドライバーの複製に失敗しました: %w", err)
	}
	return snapshot, nil
}

// Restore はスナップショットの状態へ戻す。スナップショット自体は再利用できる。
func (s *Skeleton) Restore(snapshot *SkeletonSnapshot) error {
	if snapshot == nil {
		return fmt.Errorf("スナップショットがありません")
	}
	bones := make([]*Bone, 0, len(snapshot.bones))
	if err := deepcopy.Copy(&bones, snapshot.bones); err != nil {
		return fmt.Errorf("スケルトンの復元に失敗しました: %w", err)
	}
	drivers := make([]Driver, 0, len(snapshot.drivers))
	if err := deepcopy.Copy(&drivers, snapshot.drivers); err != nil {
		return fmt.Errorf("ドライバーの復元に失敗しました: %w", err)
	}
	s.bones = bones
	s.drivers = drivers
	s.reindex()
	return nil
}

func (s *Skeleton) reindex() {
	s.nameIndex = make(map[string]BoneIndex, len(s.bones))
	for i, bone := range s.bones {
		bone.index = BoneIndex(i)
		s.nameIndex[bone.Name] = BoneIndex(i)
	}
}
