// 指示: miu200521358
package minteractor

import (
	"fmt"
	"strings"

	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/model"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/port/moutput"
)

// LoadMetarig はメタリグを読み込む。
func (uc *GameRigUsecase) LoadMetarig(rep moutput.IMetarigReader, path string) (*model.Skeleton, error) {
	repo := rep
	if repo == nil {
		repo = uc.metarigReader
	}
	if repo == nil {
		return nil, fmt.Errorf("メタリグ読み込みリポジトリが設定されていません")
	}
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("入力メタリグパスが未指定です")
	}
	sk, err := repo.Load(path)
	if err != nil {
		return nil, fmt.Errorf("メタリグの読み込みに失敗しました: %w", err)
	}
	if sk == nil {
		return nil, fmt.Errorf("メタリグ読み込み結果が空です")
	}
	return sk, nil
}
