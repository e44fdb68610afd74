// 指示: miu200521358
// Package mpresenter は生成結果のCLI表示を提供する。
package mpresenter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/adapter/mpresenter/messages"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/model"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/minteractor"
	"github.com/pterm/pterm"
)

// PanelTable はパネル行を表形式の文字列配列にする。先頭行は見出し。
func PanelTable(sk *model.Skeleton, rows []model.UIRow) [][]string {
	data := [][]string{{
		messages.LabelPanelLabel,
		messages.LabelPanelBone,
		messages.LabelPanelProperty,
		messages.LabelPanelDefault,
	}}
	for _, row := range rows {
		def := ""
		if sk != nil {
			if bone, err := sk.GetByName(row.Bone); err == nil {
				if prop, ok := bone.Property(row.Property); ok {
					def = strconv.FormatFloat(prop.Default, 'g', -1, 64)
				}
			}
		}
		data = append(data, []string{row.Label, row.Bone, row.Property, def})
	}
	return data
}

// SummaryTable は機能インスタンスごとの結果を表形式の文字列配列にする。先頭行は見出し。
func SummaryTable(result *minteractor.GenerateResult) [][]string {
	data := [][]string{{
		messages.LabelSummaryKind,
		messages.LabelSummaryRoot,
		messages.LabelSummaryGenerated,
		messages.LabelSummaryStatus,
	}}
	if result == nil {
		return data
	}
	for _, instance := range result.Instances {
		status := messages.StatusGenerated
		switch {
		case instance.Skipped:
			status = messages.StatusSkipped
		case instance.Failed():
			status = fmt.Sprintf("%s: %v", messages.StatusFailed, instance.Err)
		}
		count := 0
		for _, names := range instance.Generated {
			count += len(names)
		}
		data = append(data, []string{string(instance.Kind), instance.Root, strconv.Itoa(count), status})
	}
	return data
}

// RenderPanel はパネル行を表として w へ出力する。
func RenderPanel(w io.Writer, sk *model.Skeleton, rows []model.UIRow) error {
	return renderTable(w, messages.LabelPanelTitle, PanelTable(sk, rows))
}

// RenderSummary は生成結果の一覧を表として w へ出力する。
func RenderSummary(w io.Writer, result *minteractor.GenerateResult) error {
	return renderTable(w, "", SummaryTable(result))
}

func renderTable(w io.Writer, title string, data [][]string) error {
	text, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("表の描画に失敗しました: %w", err)
	}
	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(w, text)
	return err
}
