// 指示: miu200521358
package minteractor

import (
	"errors"
	"fmt"

	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/merrors"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/model"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/port/moutput"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// connectedTolerance は接続ボーンのヘッドと親テールの許容誤差。
const connectedTolerance = 1e-4

// ValidateSkeleton は生成後のスケルトンを検証する。
// 名前の一意性、親子関係の非循環、接続ボーンの形状、ドライバー式の解釈可否を確認する。
func ValidateSkeleton(sk *model.Skeleton, evaluator moutput.IDriverEvaluator) error {
	if sk == nil {
		return fmt.Errorf("検証対象スケルトンがありません")
	}
	errs := validateNames(sk)
	if err := validateAcyclic(sk); err != nil {
		errs = append(errs, err)
	}
	errs = append(errs, validateConnected(sk)...)
	errs = append(errs, validateDrivers(sk, evaluator)...)
	return errors.Join(errs...)
}

// validateNames はボーン名の重複を検出する。
func validateNames(sk *model.Skeleton) []error {
	seen := make(map[string]struct{}, sk.Len())
	errs := make([]error, 0)
	for _, bone := range sk.Values() {
		if _, exists := seen[bone.Name]; exists {
			errs = append(errs, merrors.NewNameConflictError(bone.Name))
			continue
		}
		seen[bone.Name] = struct{}{}
	}
	return errs
}

// validateAcyclic は親子関係を有向グラフにしてトポロジカル順序が得られるか確認する。
func validateAcyclic(sk *model.Skeleton) error {
	graph := simple.NewDirectedGraph()
	bones := sk.Values()
	for i := range bones {
		graph.AddNode(simple.Node(i))
	}
	for i, bone := range bones {
		parent := bone.ParentIndex
		if !parent.IsValid() {
			continue
		}
		if int(parent) >= len(bones) {
			return merrors.NewBoneNotFoundError(parent)
		}
		if int(parent) == i {
			return &merrors.CycleError{Child: bone.Name}
		}
		graph.SetEdge(graph.NewEdge(simple.Node(parent), simple.Node(i)))
	}
	if _, err := topo.Sort(graph); err != nil {
		var unorderable topo.Unorderable
		if errors.As(err, &unorderable) && len(unorderable) > 0 && len(unorderable[0]) > 0 {
			first := unorderable[0]
			child := bones[first[0].ID()].Name
			parent := bones[first[len(first)-1].ID()].Name
			return &merrors.CycleError{Child: child, Parent: parent}
		}
		return &merrors.CycleError{Child: err.Error()}
	}
	return nil
}

// validateConnected は接続ボーンのヘッドが親テールと一致するか確認する。
func validateConnected(sk *model.Skeleton) []error {
	errs := make([]error, 0)
	for _, bone := range sk.Values() {
		if !bone.Connected || !bone.ParentIndex.IsValid() {
			continue
		}
		parent, err := sk.Get(bone.ParentIndex)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !bone.Head.NearEquals(parent.Tail, connectedTolerance) {
			errs = append(errs, fmt.Errorf("接続ボーンのヘッドが親テールと一致しません: %s head=%s parent=%s tail=%s",
				bone.Name, bone.Head, parent.Name, parent.Tail))
		}
	}
	return errs
}

// validateDrivers はドライバー式を評価器で解釈できるか確認する。評価器が無ければ省略する。
func validateDrivers(sk *model.Skeleton, evaluator moutput.IDriverEvaluator) []error {
	if evaluator == nil {
		return nil
	}
	errs := make([]error, 0)
	for _, driver := range sk.Drivers() {
		if err := evaluator.Compile(driver.Expression()); err != nil {
			errs = append(errs, fmt.Errorf("ドライバー式を解釈できません: %s[%d] %q: %w",
				sk.NameOf(driver.Target.Bone), driver.Target.Constraint, driver.Expression(), err))
		}
	}
	return errs
}
