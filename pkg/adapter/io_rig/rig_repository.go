// 指示: miu200521358
package io_rig

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/mmath"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/model"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/port/moutput"
	"gopkg.in/yaml.v3"
)

const (
	saveDirMode  = 0o755
	saveFileMode = 0o644
)

// RigRepository は生成済みリグ文書の保存を表す。
type RigRepository struct{}

// NewRigRepository は RigRepository を生成する。
func NewRigRepository() *RigRepository {
	return &RigRepository{}
}

// Save は生成済みリグを YAML か JSON で保存する。形式未指定の場合は YAML。
func (r *RigRepository) Save(path string, sk *model.Skeleton, opts moutput.SaveOptions) error {
	if strings.TrimSpace(path) == "" {
		return NewIoSaveFailed("保存先パスが未指定です", nil)
	}
	if sk == nil {
		return NewIoSaveFailed("保存対象スケルトンがありません", nil)
	}
	data, err := Encode(sk, opts)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), saveDirMode); err != nil {
		return NewIoSaveFailed("保存先ディレクトリの作成に失敗しました", err)
	}
	if err := os.WriteFile(path, data, saveFileMode); err != nil {
		return NewIoSaveFailed("リグ文書の書き込みに失敗しました", err)
	}
	logIoRigInfo("リグ保存完了: file=%s bones=%d drivers=%d", filepath.Base(path), sk.Len(), len(sk.Drivers()))
	return nil
}

// Encode は生成済みリグを文書バイト列へ変換する。
func Encode(sk *model.Skeleton, opts moutput.SaveOptions) ([]byte, error) {
	doc := buildRigDocument(sk, opts)
	switch strings.ToLower(opts.Format) {
	case moutput.FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, NewIoSaveFailed("JSONへの変換に失敗しました", err)
		}
		return append(data, '\n'), nil
	case "", moutput.FormatYAML:
		var buf bytes.Buffer
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(doc); err != nil {
			return nil, NewIoSaveFailed("YAMLへの変換に失敗しました", err)
		}
		if err := encoder.Close(); err != nil {
			return nil, NewIoSaveFailed("YAMLへの変換に失敗しました", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, NewIoSaveFailed(fmt.Sprintf("未対応の出力形式です: %s", opts.Format), nil)
	}
}

// buildRigDocument はスケルトンを文書構造へ変換する。参照はボーン名で表す。
func buildRigDocument(sk *model.Skeleton, opts moutput.SaveOptions) rigDocument {
	doc := rigDocument{
		Name:  sk.Name,
		RunID: opts.RunID,
		Bones: make([]rigBone, 0, sk.Len()),
	}
	for _, bone := range sk.Values() {
		doc.Bones = append(doc.Bones, buildRigBone(sk, bone))
	}
	for _, driver := range sk.Drivers() {
		doc.Drivers = append(doc.Drivers, buildRigDriver(sk, driver))
	}
	for _, row := range opts.Panel {
		doc.Panel = append(doc.Panel, rigPanelRow{Bone: row.Bone, Property: row.Property, Label: row.Label})
	}
	return doc
}

func buildRigBone(sk *model.Skeleton, bone *model.Bone) rigBone {
	out := rigBone{
		Name:      bone.Name,
		Role:      bone.Role.String(),
		Head:      vec3ToSlice(bone.Head),
		Tail:      vec3ToSlice(bone.Tail),
		Roll:      bone.Roll,
		Connected: bone.Connected,
		Deform:    bone.Deform,
		Layers:    bone.Layers.Indexes(),
		Widget:    bone.Widget,
		RigType:   bone.RigType,
	}
	if bone.HasParent() {
		out.Parent = sk.NameOf(bone.ParentIndex)
	}
	if len(out.Layers) == 0 {
		out.Layers = nil
	}
	locks := rigLocks{
		Location: lockAxes(bone.Locks.Location),
		Rotation: lockAxes(bone.Locks.Rotation),
		Scale:    lockAxes(bone.Locks.Scale),
	}
	if locks != (rigLocks{}) {
		out.Locks = &locks
	}
	for _, c := range bone.Constraints {
		out.Constraints = append(out.Constraints, buildRigConstraint(sk, c))
	}
	for _, prop := range bone.Properties {
		out.Properties = append(out.Properties, rigProperty{
			Name:        prop.Name,
			Default:     prop.Default,
			Min:         prop.Min,
			Max:         prop.Max,
			Description: prop.Description,
		})
	}
	return out
}

func buildRigConstraint(sk *model.Skeleton, c model.Constraint) rigConstraint {
	out := rigConstraint{
		Name:        c.Name,
		Type:        string(c.Type),
		Influence:   c.Influence,
		OwnerSpace:  string(c.OwnerSpace),
		TargetSpace: string(c.TargetSpace),
		UseOffset:   c.UseOffset,
		HeadTail:    c.HeadTail,
		ChainCount:  c.ChainCount,
		RestLength:  c.RestLength,
		VolumeMode:  c.VolumeMode,
	}
	if c.HasTarget() {
		out.Target = sk.NameOf(c.Target)
	}
	switch c.Type {
	case model.CONSTRAINT_COPY_ROTATION, model.CONSTRAINT_COPY_LOCATION, model.CONSTRAINT_COPY_SCALE:
		out.Axes = maskAxes(c.Axes)
		out.Invert = maskAxes(c.Invert)
	case model.CONSTRAINT_IK:
		out.UseStretch = c.UseStretch
		if c.PoleTarget.IsValid() {
			out.PoleTarget = sk.NameOf(c.PoleTarget)
		}
	case model.CONSTRAINT_DAMPED_TRACK:
		out.TrackAxis = c.TrackAxis
	case model.CONSTRAINT_LIMIT_ROTATION:
		out.LimitAxes = maskAxes(c.Limit.Use)
		out.LimitMin = vec3ToSlice(c.Limit.Min)
		out.LimitMax = vec3ToSlice(c.Limit.Max)
	}
	return out
}

func buildRigDriver(sk *model.Skeleton, driver model.Driver) rigDriver {
	out := rigDriver{
		Bone:         sk.NameOf(driver.Target.Bone),
		Constraint:   driver.Target.Constraint,
		Path:         driver.Target.Path,
		Kind:         string(driver.Kind),
		Expression:   driver.Expression(),
		Variables:    make([]rigDriverVariable, 0, len(driver.Variables)),
		Coefficients: driver.Coefficients,
	}
	for _, variable := range driver.Variables {
		out.Variables = append(out.Variables, rigDriverVariable{
			Name:     variable.Name,
			Bone:     sk.NameOf(variable.Bone),
			Property: variable.Property,
		})
	}
	return out
}

func vec3ToSlice(v mmath.Vec3) []float64 {
	return []float64{v.X, v.Y, v.Z}
}

// lockAxes はロック軸を "XYZ" 形式の文字列にする。
func lockAxes(lock model.AxisLock) string {
	return maskAxes(model.AxisMask{X: lock[0], Y: lock[1], Z: lock[2]})
}

func maskAxes(mask model.AxisMask) string {
	var b strings.Builder
	if mask.X {
		b.WriteString("X")
	}
	if mask.Y {
		b.WriteString("Y")
	}
	if mask.Z {
		b.WriteString("Z")
	}
	return b.String()
}
