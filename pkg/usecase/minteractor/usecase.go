// 指示: miu200521358
package minteractor

import (
	"fmt"

	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/port/moutput"
)

// GameRigUsecaseDeps はリグ生成ユースケースの依存を表す。
type GameRigUsecaseDeps struct {
	MetarigReader   moutput.IMetarigReader
	RigWriter       moutput.IRigWriter
	DriverEvaluator moutput.IDriverEvaluator
	WidgetAssigner  moutput.IWidgetAssigner
	Registry        *Registry
}

// GameRigUsecase はメタリグからゲーム向けリグを生成する処理をまとめたユースケースを表す。
type GameRigUsecase struct {
	metarigReader   moutput.IMetarigReader
	rigWriter       moutput.IRigWriter
	driverEvaluator moutput.IDriverEvaluator
	widgetAssigner  moutput.IWidgetAssigner
	registry        *Registry
}

// NewGameRigUsecase はリグ生成ユースケースを生成する。
// 登録表を省略した場合は全機能の既定登録表を使う。登録表に欠落があればエラーを返す。
func NewGameRigUsecase(deps GameRigUsecaseDeps) (*GameRigUsecase, error) {
	registry := deps.Registry
	if registry == nil {
		registry = DefaultRegistry()
	}
	if err := registry.Validate(); err != nil {
		return nil, fmt.Errorf("機能登録表が不正です: %w", err)
	}
	return &GameRigUsecase{
		metarigReader:   deps.MetarigReader,
		rigWriter:       deps.RigWriter,
		driverEvaluator: deps.DriverEvaluator,
		widgetAssigner:  deps.WidgetAssigner,
		registry:        registry,
	}, nil
}

// Registry は機能登録表を返す。
func (uc *GameRigUsecase) Registry() *Registry {
	return uc.registry
}
