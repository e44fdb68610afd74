// 指示: miu200521358
package mrig

import (
	"fmt"

	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/model"
)

// driverVariableStem はドライバー変数名の語幹。
const driverVariableStem = "var"

// PropertyRef は公開プロパティへの参照を表す。
type PropertyRef struct {
	Bone     model.BoneIndex
	Property string
}

// DriverBinder は公開プロパティの生成とドライバー登録を行う。
type DriverBinder struct {
	sk     *model.Skeleton
	errors []error
}

// NewDriverBinder はドライバー結線器を生成する。
func NewDriverBinder(sk *model.Skeleton) *DriverBinder {
	return &DriverBinder{sk: sk}
}

// Expose はコントロールにプロパティを公開し、その参照を返す。
func (b *DriverBinder) Expose(owner model.BoneIndex, prop model.PropertyDef) PropertyRef {
	if err := b.sk.AddProperty(owner, prop); err != nil {
		b.errors = append(b.errors, fmt.Errorf("プロパティ公開に失敗しました: %s: %w", prop.Name, err))
	}
	return PropertyRef{Bone: owner, Property: prop.Name}
}

// Bind はコンストレイント影響度を駆動するドライバーを登録する。
// 変数名は var, var_001, var_002 の順に割り当てる。
func (b *DriverBinder) Bind(owner model.BoneIndex, constraint int, kind model.DriverKind, coefficients []float64, sources ...PropertyRef) {
	if constraint < 0 {
		b.errors = append(b.errors, fmt.Errorf("ドライバー駆動先コンストレイントがありません: %s", b.sk.NameOf(owner)))
		return
	}
	variables := make([]model.DriverVariable, 0, len(sources))
	for i, source := range sources {
		variables = append(variables, model.DriverVariable{Name: VariableName(i), Bone: source.Bone, Property: source.Property})
	}
	driver := model.Driver{
		Target:       model.DriverTarget{Bone: owner, Constraint: constraint, Path: model.DriverInfluencePath},
		Kind:         kind,
		Variables:    variables,
		Coefficients: append([]float64(nil), coefficients...),
	}
	if err := b.sk.AddDriver(driver); err != nil {
		b.errors = append(b.errors, fmt.Errorf("ドライバー登録に失敗しました: %s: %w", b.sk.NameOf(owner), err))
	}
}

// Average は平均式のドライバーを登録する。
func (b *DriverBinder) Average(owner model.BoneIndex, constraint int, sources ...PropertyRef) {
	b.Bind(owner, constraint, model.DRIVER_AVERAGE, nil, sources...)
}

// Sum は総和式のドライバーを登録する。
func (b *DriverBinder) Sum(owner model.BoneIndex, constraint int, sources ...PropertyRef) {
	b.Bind(owner, constraint, model.DRIVER_SUM, nil, sources...)
}

// Polynomial は多項式ドライバーを登録する。
func (b *DriverBinder) Polynomial(owner model.BoneIndex, constraint int, coefficients []float64, sources ...PropertyRef) {
	b.Bind(owner, constraint, model.DRIVER_POLYNOMIAL, coefficients, sources...)
}

// Err は記録済みの失敗を返す。
func (b *DriverBinder) Err() error {
	return joinErrors(b.errors)
}

// VariableName は n 番目のドライバー変数名を返す。
func VariableName(n int) string {
	if n <= 0 {
		return driverVariableStem
	}
	return fmt.Sprintf("%s_%03d", driverVariableStem, n)
}
