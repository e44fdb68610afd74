// 指示: miu200521358
package limb

import (
	"testing"

	"github.com/SAM-tak/BlenderGameRig-sub000/internal/rigfixture"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/merrors"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/model"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/naming"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/mrig"
)

func newArmSkeleton(t *testing.T, sides ...string) *model.Skeleton {
	t.Helper()
	builder := rigfixture.New("arms").Root("root")
	for _, side := range sides {
		builder.Arm("root", side).Tag("upper_arm."+side, "limb", model.Params{"limb_type": "arm"})
	}
	return builder.Skeleton()
}

func TestGenerateArmCreatesExpectedBones(t *testing.T) {
	sk := newArmSkeleton(t, "L")
	ri, err := New().Generate(sk, sk.IndexOf("upper_arm.L"), mrig.GenerateOptions{RootBoneName: "root"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{
		"MCH-upper_arm_parent.L",
		"CTRL-upper_arm_fk.L", "CTRL-forearm_fk.L", "CTRL-hand_fk.L",
		"MCH_TGT-hand_fk.L",
		"MCH-upper_arm_ik.L", "MCH-forearm_ik.L", "CTRL-hand_ik.L",
		"MCH-upper_arm_ik_stretch.L",
	} {
		if !sk.Contains(name) {
			t.Fatalf("expected bone missing: %s", name)
		}
	}
	if got := ri.GeneratedCount(model.ROLE_CONTROL); got != 4 {
		t.Fatalf("control count mismatch: got=%d want=4", got)
	}
	if got := ri.GeneratedCount(model.ROLE_MECHANISM); got != 4 {
		t.Fatalf("mechanism count mismatch: got=%d want=4", got)
	}
	if got := ri.GeneratedCount(model.ROLE_MECHANISM_TARGET); got != 1 {
		t.Fatalf("mechanism target count mismatch: got=%d want=1", got)
	}

	fk0, _ := sk.GetByName("CTRL-upper_arm_fk.L")
	for _, prop := range []string{model.PropIkFkRate, model.PropFkLimbFollow, model.PropIkStretch} {
		if _, ok := fk0.Property(prop); !ok {
			t.Fatalf("expected property on first fk control: %s", prop)
		}
	}

	rateBound := 0
	for _, driver := range sk.Drivers() {
		if len(driver.Variables) == 1 && driver.Variables[0].Property == model.PropIkFkRate {
			rateBound++
			owner, _ := sk.Get(driver.Target.Bone)
			if owner.Role != model.ROLE_SOURCE {
				t.Fatalf("ik_fk_rate should drive source bones: got=%s", owner.Name)
			}
			if owner.Constraints[driver.Target.Constraint].Name != "FK" {
				t.Fatalf("ik_fk_rate should drive the FK constraint: got=%s", owner.Constraints[driver.Target.Constraint].Name)
			}
		}
	}
	if rateBound != 3 {
		t.Fatalf("ik_fk_rate bindings mismatch: got=%d want=3", rateBound)
	}

	hand, _ := sk.GetByName("hand.L")
	if len(hand.Constraints) != 3 {
		t.Fatalf("source constraint count mismatch: got=%d", len(hand.Constraints))
	}
	wantTypes := []model.ConstraintType{model.CONSTRAINT_COPY_TRANSFORMS, model.CONSTRAINT_COPY_TRANSFORMS, model.CONSTRAINT_MAINTAIN_VOLUME}
	for i, want := range wantTypes {
		if hand.Constraints[i].Type != want {
			t.Fatalf("constraint order mismatch: index=%d got=%s want=%s", i, hand.Constraints[i].Type, want)
		}
	}
	if sk.NameOf(hand.Constraints[0].Target) != "CTRL-hand_ik.L" {
		t.Fatalf("hand ik target mismatch: got=%s", sk.NameOf(hand.Constraints[0].Target))
	}
	if len(ri.UIRows) != 3 || ri.UIRows[0].Label != model.LabelIkFk {
		t.Fatalf("ui rows mismatch: got=%+v", ri.UIRows)
	}
}

func TestGenerateArmBlendBoundaries(t *testing.T) {
	sk := newArmSkeleton(t, "L")
	if _, err := New().Generate(sk, sk.IndexOf("upper_arm.L"), mrig.GenerateOptions{RootBoneName: "root"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, driver := range sk.Drivers() {
		if driver.Variables[0].Property != model.PropIkFkRate {
			continue
		}
		name := driver.Variables[0].Name
		if got := driver.Evaluate(map[string]float64{name: 0}); got != 0 {
			t.Fatalf("ik boundary mismatch: got=%f", got)
		}
		if got := driver.Evaluate(map[string]float64{name: 1}); got != 1 {
			t.Fatalf("fk boundary mismatch: got=%f", got)
		}
	}
}

func TestGenerateArmWithoutRootUsesRotationLimit(t *testing.T) {
	sk := newArmSkeleton(t, "L")
	ri, err := New().Generate(sk, sk.IndexOf("upper_arm.L"), mrig.GenerateOptions{RootBoneName: "missing"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parent, _ := sk.GetByName("MCH-upper_arm_parent.L")
	if len(parent.Constraints) != 1 || parent.Constraints[0].Type != model.CONSTRAINT_LIMIT_ROTATION {
		t.Fatalf("expected rotation limit: got=%+v", parent.Constraints)
	}
	if parent.Constraints[0].Limit.Max.X <= 0 || parent.Constraints[0].Limit.Max.Y != 0 {
		t.Fatalf("limit range mismatch: got=%v", parent.Constraints[0].Limit.Max)
	}
	if len(ri.Warnings) != 1 || ri.Warnings[0].ID != model.RigWarningRootBoneMissing {
		t.Fatalf("expected root warning: got=%+v", ri.Warnings)
	}
}

func TestGenerateLegBuildsToeAndStretch(t *testing.T) {
	sk := rigfixture.New("legs").Root("root").Leg("root", "L").
		Tag("thigh.L", "limb", model.Params{"limb_type": "leg"}).Skeleton()
	if _, err := New().Generate(sk, sk.IndexOf("thigh.L"), mrig.GenerateOptions{RootBoneName: "root"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	toe, err := sk.GetByName("MCH-toe_ik.L")
	if err != nil {
		t.Fatalf("expected toe ik mechanism: %v", err)
	}
	if sk.NameOf(toe.ParentIndex) != "CTRL-foot_ik.L" {
		t.Fatalf("toe parent mismatch: got=%s", sk.NameOf(toe.ParentIndex))
	}
	stretch, _ := sk.GetByName("MCH-thigh_ik_stretch.L")
	foot, _ := sk.GetByName("foot.L")
	if !stretch.Tail.NearEquals(foot.Head, 1e-9) {
		t.Fatalf("leg stretch should end at foot head: got=%v want=%v", stretch.Tail, foot.Head)
	}
}

func TestGenerateShortChainIsStructuralError(t *testing.T) {
	sk := newArmSkeleton(t, "L")
	sk.Values()[sk.IndexOf("upper_arm.L")].Params = model.Params{"limb_type": "leg"}
	before := sk.Len()
	_, err := New().Generate(sk, sk.IndexOf("upper_arm.L"), mrig.GenerateOptions{})
	if !merrors.IsStructuralError(err) {
		t.Fatalf("expected structural error: got=%v", err)
	}
	if sk.Len() != before {
		t.Fatalf("no bones should be created: got=%d want=%d", sk.Len(), before)
	}
}

func TestGenerateArmsAreMirrored(t *testing.T) {
	sk := newArmSkeleton(t, "L", "R")
	left, err := New().Generate(sk, sk.IndexOf("upper_arm.L"), mrig.GenerateOptions{RootBoneName: "root"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	right, err := New().Generate(sk, sk.IndexOf("upper_arm.R"), mrig.GenerateOptions{RootBoneName: "root"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, role := range model.Roles {
		leftNames := left.GeneratedNames(role)
		rightNames := right.GeneratedNames(role)
		if len(leftNames) != len(rightNames) {
			t.Fatalf("mirror count mismatch: role=%s", role)
		}
		for i, name := range leftNames {
			mirrored, _ := naming.MirrorName(name)
			if mirrored != rightNames[i] {
				t.Fatalf("mirror name mismatch: got=%s want=%s", rightNames[i], mirrored)
			}
			l, _ := sk.GetByName(name)
			r, _ := sk.GetByName(rightNames[i])
			for j := range l.Constraints {
				if l.Constraints[j].Influence != r.Constraints[j].Influence {
					t.Fatalf("mirror influence mismatch: bone=%s", name)
				}
			}
		}
	}
}
