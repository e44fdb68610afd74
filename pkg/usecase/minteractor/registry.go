// 指示: miu200521358
package minteractor

import (
	"fmt"
	"strings"

	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/model"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/feature/face"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/feature/finger"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/feature/limb"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/feature/palm"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/feature/ring"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/feature/tentacle"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/feature/torso"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/mrig"
)

// Registry は機能種別から生成器を引く登録表を表す。
type Registry struct {
	builders map[model.FeatureKind]mrig.IFeatureBuilder
}

// NewRegistry は生成器一覧から登録表を生成する。同じ種別の重複はエラー。
func NewRegistry(builders ...mrig.IFeatureBuilder) (*Registry, error) {
	registry := &Registry{builders: make(map[model.FeatureKind]mrig.IFeatureBuilder, len(builders))}
	for _, builder := range builders {
		if builder == nil {
			return nil, fmt.Errorf("生成器が未設定です")
		}
		kind := builder.Kind()
		if _, exists := registry.builders[kind]; exists {
			return nil, fmt.Errorf("機能種別が重複しています: %s", kind)
		}
		registry.builders[kind] = builder
	}
	return registry, nil
}

// DefaultRegistry は全機能の生成器を登録した登録表を返す。
func DefaultRegistry() *Registry {
	registry, err := NewRegistry(
		limb.New(),
		torso.New(),
		finger.NewFinger(),
		finger.NewThumb(),
		tentacle.New(),
		ring.New(),
		palm.New(),
		face.New(),
	)
	if err != nil {
		// 固定一覧のため発生しない。
		panic(err)
	}
	return registry
}

// Validate は全機能種別に生成器が登録されているか検証する。
func (r *Registry) Validate() error {
	if r == nil {
		return fmt.Errorf("機能登録表がありません")
	}
	missing := make([]string, 0)
	for _, kind := range model.FeatureKinds {
		if _, ok := r.builders[kind]; !ok {
			missing = append(missing, string(kind))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("生成器が未登録の機能種別があります: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Lookup は機能種別の生成器を返す。
func (r *Registry) Lookup(kind model.FeatureKind) (mrig.IFeatureBuilder, bool) {
	builder, ok := r.builders[kind]
	return builder, ok
}
