// 指示: miu200521358
package minteractor

import (
	"fmt"
	"strings"

	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/port/moutput"
)

// SaveRig は生成済みリグを保存する。パネル行と実行IDは結果から補う。
func (uc *GameRigUsecase) SaveRig(rep moutput.IRigWriter, path string, result *GenerateResult, opts SaveOptions) error {
	writer := rep
	if writer == nil {
		writer = uc.rigWriter
	}
	if writer == nil {
		return fmt.Errorf("リグ保存リポジトリが設定されていません")
	}
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("保存先パスが未指定です")
	}
	if result == nil || result.Skeleton == nil {
		return fmt.Errorf("保存対象リグが未設定です")
	}
	if opts.RunID == "" {
		opts.RunID = result.RunID
	}
	if opts.Panel == nil {
		opts.Panel = result.UIRows
	}
	if opts.Format == "" {
		opts.Format = FormatFromPath(path)
	}
	return writer.Save(path, result.Skeleton, opts)
}
