// 指示: miu200521358
package torso

import (
	"testing"

	"github.com/SAM-tak/BlenderGameRig-sub000/internal/rigfixture"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/merrors"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/model"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/mrig"
)

func newSpineSkeleton(segments int, params model.Params) *model.Skeleton {
	return rigfixture.New("spine").Root("root").Spine("root", segments).Tag("spine", "torso", params).Skeleton()
}

func TestGenerateSixSegmentsCreatesFiveControls(t *testing.T) {
	sk := newSpineSkeleton(6, model.Params{"pivot_pos": 2, "neck_pos": 5})
	ri, err := New().Generate(sk, sk.IndexOf("spine"), mrig.GenerateOptions{RootBoneName: "root"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	controls := ri.GeneratedNames(model.ROLE_CONTROL)
	want := []string{"CTRL-torso", "CTRL-hips", "CTRL-chest", "CTRL-neck", "CTRL-head"}
	if len(controls) != len(want) {
		t.Fatalf("control mismatch: got=%v want=%v", controls, want)
	}
	for i := range want {
		if controls[i] != want[i] {
			t.Fatalf("control mismatch: got=%v want=%v", controls, want)
		}
	}
	if got := ri.GeneratedCount(model.ROLE_TWEAK); got != 6 {
		t.Fatalf("tweak count mismatch: got=%d want=6", got)
	}

	torso, _ := sk.GetByName("CTRL-torso")
	spine, _ := sk.GetByName("spine")
	if !torso.Head.NearEquals(spine.Center(), 1e-9) {
		t.Fatalf("torso should sit at first segment midpoint: got=%v want=%v", torso.Head, spine.Center())
	}
	if sk.NameOf(torso.ParentIndex) != "root" {
		t.Fatalf("torso parent mismatch: got=%s", sk.NameOf(torso.ParentIndex))
	}
	for _, prop := range []string{model.PropNeckFollow, model.PropHeadFollow} {
		if _, ok := torso.Property(prop); !ok {
			t.Fatalf("expected property on torso: %s", prop)
		}
	}
	neckFollow, _ := torso.Property(model.PropNeckFollow)
	if neckFollow.Default != 0.5 {
		t.Fatalf("neck follow default mismatch: got=%f", neckFollow.Default)
	}

	head, _ := sk.GetByName("CTRL-head")
	if sk.NameOf(head.ParentIndex) != "MCH-head_rot" {
		t.Fatalf("head parent mismatch: got=%s", sk.NameOf(head.ParentIndex))
	}
	neck, _ := sk.GetByName("CTRL-neck")
	if sk.NameOf(neck.ParentIndex) != "MCH-neck_rot" {
		t.Fatalf("neck parent mismatch: got=%s", sk.NameOf(neck.ParentIndex))
	}
}

func TestGenerateZoneInfluencesIncreaseDistally(t *testing.T) {
	sk := newSpineSkeleton(6, model.Params{"pivot_pos": 2, "neck_pos": 5})
	if _, err := New().Generate(sk, sk.IndexOf("spine"), mrig.GenerateOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lowerNear, _ := sk.GetByName("MCH-spine.001")
	lowerFar, _ := sk.GetByName("MCH-spine")
	if lowerNear.Constraints[0].Influence != 0.5 || lowerFar.Constraints[0].Influence != 1.0 {
		t.Fatalf("lower influences mismatch: near=%f far=%f", lowerNear.Constraints[0].Influence, lowerFar.Constraints[0].Influence)
	}
	if sk.NameOf(lowerNear.ParentIndex) != "MCH-pivot" || sk.NameOf(lowerFar.ParentIndex) != "MCH-spine.001" {
		t.Fatalf("lower chain parent mismatch")
	}
	upperFar, _ := sk.GetByName("MCH-spine.003")
	if upperFar.Constraints[0].Influence != 1.0 || sk.NameOf(upperFar.Constraints[0].Target) != "CTRL-chest" {
		t.Fatalf("upper chain mismatch: got=%+v", upperFar.Constraints[0])
	}
}

func TestGenerateFollowDriversAreComplementary(t *testing.T) {
	sk := newSpineSkeleton(6, model.Params{"pivot_pos": 2, "neck_pos": 5})
	if _, err := New().Generate(sk, sk.IndexOf("spine"), mrig.GenerateOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rotNeck := sk.IndexOf("MCH-neck_rot")
	values := map[int]float64{}
	for _, driver := range sk.Drivers() {
		if driver.Target.Bone != rotNeck {
			continue
		}
		values[driver.Target.Constraint] = driver.Evaluate(map[string]float64{"var": 0.3})
	}
	if len(values) != 2 || values[0]+values[1] != 1.0 {
		t.Fatalf("follow drivers should sum to one: got=%v", values)
	}
}

func TestGenerateRejectsInvalidTopology(t *testing.T) {
	cases := []struct {
		name     string
		segments int
		params   model.Params
	}{
		{name: "too short", segments: 4, params: model.Params{"pivot_pos": 2, "neck_pos": 3}},
		{name: "neck not above pivot", segments: 6, params: model.Params{"pivot_pos": 3, "neck_pos": 3}},
		{name: "pivot zero", segments: 6, params: model.Params{"pivot_pos": 0, "neck_pos": 4}},
		{name: "neck beyond chain", segments: 6, params: model.Params{"pivot_pos": 2, "neck_pos": 7}},
	}
	for _, tc := range cases {
		sk := newSpineSkeleton(tc.segments, tc.params)
		before := sk.Len()
		_, err := New().Generate(sk, sk.IndexOf("spine"), mrig.GenerateOptions{})
		if !merrors.IsStructuralError(err) {
			t.Fatalf("%s: expected structural error: got=%v", tc.name, err)
		}
		if sk.Len() != before {
			t.Fatalf("%s: no bones should be created", tc.name)
		}
	}
}

func TestGenerateFiveSegmentsSucceeds(t *testing.T) {
	sk := newSpineSkeleton(5, model.Params{"pivot_pos": 2, "neck_pos": 5})
	ri, err := New().Generate(sk, sk.IndexOf("spine"), mrig.GenerateOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ri.GeneratedCount(model.ROLE_CONTROL); got != 5 {
		t.Fatalf("control count mismatch: got=%d", got)
	}
	neck, _ := sk.GetByName("CTRL-neck")
	if neck.Length() <= 0 {
		t.Fatalf("neck control should have a handle length")
	}
}

func TestGenerateAdjacentPivotAndNeckOmitsChest(t *testing.T) {
	sk := newSpineSkeleton(6, model.Params{"pivot_pos": 2, "neck_pos": 3})
	ri, err := New().Generate(sk, sk.IndexOf("spine"), mrig.GenerateOptions{RootBoneName: "root"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sk.Contains("CTRL-chest") {
		t.Fatalf("chest control should be omitted when the chest zone is empty")
	}
	if got := ri.GeneratedCount(model.ROLE_CONTROL); got != 4 {
		t.Fatalf("control count mismatch: got=%v", ri.GeneratedNames(model.ROLE_CONTROL))
	}
	if len(ri.Warnings) != 1 || ri.Warnings[0].ID != model.RigWarningSubchainMissing {
		t.Fatalf("expected chest warning: got=%+v", ri.Warnings)
	}
	rotNeck, _ := sk.GetByName("MCH-neck_rot")
	if sk.NameOf(rotNeck.ParentIndex) != "MCH-pivot" {
		t.Fatalf("neck rotation parent mismatch: got=%s", sk.NameOf(rotNeck.ParentIndex))
	}
	if sk.NameOf(rotNeck.Constraints[0].Target) != "MCH-pivot" {
		t.Fatalf("neck follow target mismatch: got=%s", sk.NameOf(rotNeck.Constraints[0].Target))
	}
	neckFirst, _ := sk.GetByName("MCH-spine.002")
	if sk.NameOf(neckFirst.ParentIndex) != "MCH-neck_rot" {
		t.Fatalf("neck chain parent mismatch: got=%s", sk.NameOf(neckFirst.ParentIndex))
	}
}
