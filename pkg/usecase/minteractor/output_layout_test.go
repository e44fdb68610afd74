// 指示: miu200521358
package minteractor

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestBuildDefaultOutputPathAt(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 30, 5, 0, time.UTC)
	testCases := []struct {
		name   string
		input  string
		format string
		want   string
	}{
		{name: "yaml", input: filepath.Join("rigs", "human.yaml"), format: "yaml", want: filepath.Join("rigs", "human_rig_20261017093005.yaml")},
		{name: "json", input: filepath.Join("rigs", "human.yaml"), format: "json", want: filepath.Join("rigs", "human_rig_20261017093005.json")},
		{name: "empty base", input: filepath.Join("rigs", ".yaml"), format: "yaml", want: ""},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := buildDefaultOutputPathAt(tc.input, tc.format, now)
			if got != tc.want {
				t.Fatalf("output path mismatch: got=%s want=%s", got, tc.want)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	if got := FormatFromPath("rig.JSON"); got != "json" {
		t.Fatalf("format mismatch: got=%s want=json", got)
	}
	if got := FormatFromPath("rig.yml"); got != "yaml" {
		t.Fatalf("format mismatch: got=%s want=yaml", got)
	}
}

func TestPrepareOutputDirCreatesNestedDir(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "a", "b", "rig.yaml")
	if err := PrepareOutputDir(outPath); err != nil {
		t.Fatalf("prepare output dir failed: %v", err)
	}
	if _, err := os.Stat(filepath.Dir(outPath)); err != nil {
		t.Fatalf("output dir not found: %v", err)
	}
}
