// 指示: miu200521358
package naming

import (
	"reflect"
	"testing"
)

func TestSplitSymmetric(t *testing.T) {
	left, right := SplitSymmetric([]string{
		"eye.R", "lid.T.L.001", "nose", "lid.T.L", "ear_L", "brow.B.R.002", "lip.T",
		"handL", "handR", "eyeL.001", "chest",
	})
	if want := []string{"ear_L", "eyeL.001", "handL", "lid.T.L", "lid.T.L.001"}; !reflect.DeepEqual(left, want) {
		t.Fatalf("left mismatch: got=%v want=%v", left, want)
	}
	if want := []string{"brow.B.R.002", "eye.R", "handR"}; !reflect.DeepEqual(right, want) {
		t.Fatalf("right mismatch: got=%v want=%v", right, want)
	}
}

func TestMirrorName(t *testing.T) {
	cases := map[string]string{
		"lid.T.L.001":  "lid.T.R.001",
		"CTRL-eye.R":   "CTRL-eye.L",
		"hand_L":       "hand_R",
		"MCH-thigh-L":  "MCH-thigh-R",
		"TWK-lips.L":   "TWK-lips.R",
		"upper_arm.R":  "upper_arm.L",
		"brow.T.L.003": "brow.T.R.003",
		"handL":        "handR",
		"eyeR.002":     "eyeL.002",
	}
	for in, want := range cases {
		got, ok := MirrorName(in)
		if !ok || got != want {
			t.Fatalf("mirror mismatch for %s: got=%s want=%s", in, got, want)
		}
	}
	if _, ok := MirrorName("nose.001"); ok {
		t.Fatalf("expected centre name to have no mirror")
	}
}

func TestStripSideAndWithTag(t *testing.T) {
	if got := StripSide("TWK-lip.T.L"); got != "TWK-lip.T" {
		t.Fatalf("strip side mismatch: got=%s", got)
	}
	if got := StripSide("lip.B.R.001"); got != "lip.B.001" {
		t.Fatalf("strip side mismatch: got=%s", got)
	}
	if got := WithTag("upper_arm.L", "fk"); got != "upper_arm_fk.L" {
		t.Fatalf("with tag mismatch: got=%s", got)
	}
	if got := WithTag("spine.003", "tweak"); got != "spine_tweak.003" {
		t.Fatalf("with tag mismatch: got=%s", got)
	}
	if got := WithTag("handL", "fk"); got != "hand_fkL" {
		t.Fatalf("with tag mismatch: got=%s", got)
	}
	if got := WithTag("torso", "pivot"); got != "torso_pivot" {
		t.Fatalf("with tag mismatch: got=%s", got)
	}
	if got := WithTag(StripOrdinal("index.L.001"), "master"); got != "index_master.L" {
		t.Fatalf("master name mismatch: got=%s", got)
	}
}

func TestBaseStem(t *testing.T) {
	if got := BaseStem("palm.01.L"); got != "palm" {
		t.Fatalf("stem mismatch: got=%s", got)
	}
	if got := BaseStem("CTRL-thumb_master.R"); got != "thumb_master" {
		t.Fatalf("stem mismatch: got=%s", got)
	}
}

func TestWithSide(t *testing.T) {
	if got := WithSide("f_index_master", SIDE_LEFT); got != "f_index_master.L" {
		t.Fatalf("with side mismatch: got=%s", got)
	}
	if got := WithSide("torso", SIDE_NONE); got != "torso" {
		t.Fatalf("with side mismatch: got=%s", got)
	}
}
