// 指示: miu200521358
package finger

import (
	"math"
	"testing"

	"github.com/SAM-tak/BlenderGameRig-sub000/internal/rigfixture"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/merrors"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/mmath"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/model"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/mrig"
)

func newHandSkeleton() *model.Skeleton {
	return rigfixture.New("hand").Root("root").
		Bone("hand.L", "root", mmath.NewVec3(0.8, 0, 1.4), mmath.NewVec3(0.88, 0, 1.4), false).
		Finger("hand.L", "f_index", "L", 0).
		Finger("hand.L", "thumb", "L", -0.04).
		Tag("f_index.01.L", "finger", nil).
		Tag("thumb.01.L", "thumb", model.Params{"primary_rotation_axis": "-Z"}).
		Skeleton()
}

func TestGenerateFingerInterleavesControlsAndMechanisms(t *testing.T) {
	sk := newHandSkeleton()
	ri, err := NewFinger().Generate(sk, sk.IndexOf("f_index.01.L"), mrig.GenerateOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ri.GeneratedCount(model.ROLE_CONTROL); got != 4 {
		t.Fatalf("control count mismatch: got=%d want=4", got)
	}
	if got := ri.GeneratedCount(model.ROLE_MECHANISM); got != 3 {
		t.Fatalf("mechanism count mismatch: got=%d want=3", got)
	}

	master, err := sk.GetByName("CTRL-f_index_master.L")
	if err != nil {
		t.Fatalf("expected master control: %v", err)
	}
	if math.Abs(master.Length()-0.1) > 1e-9 {
		t.Fatalf("master should span the chain: got=%f", master.Length())
	}
	if sk.NameOf(master.ParentIndex) != "hand.L" {
		t.Fatalf("master parent mismatch: got=%s", sk.NameOf(master.ParentIndex))
	}

	parents := map[string]string{
		"MCH-f_index.01.L":  "CTRL-f_index_master.L",
		"CTRL-f_index.01.L": "MCH-f_index.01.L",
		"MCH-f_index.02.L":  "CTRL-f_index.01.L",
		"CTRL-f_index.02.L": "MCH-f_index.02.L",
		"MCH-f_index.03.L":  "CTRL-f_index.02.L",
	}
	for child, want := range parents {
		bone, err := sk.GetByName(child)
		if err != nil {
			t.Fatalf("missing bone: %s", child)
		}
		if got := sk.NameOf(bone.ParentIndex); got != want {
			t.Fatalf("parent mismatch: child=%s got=%s want=%s", child, got, want)
		}
	}

	mch, _ := sk.GetByName("MCH-f_index.02.L")
	rotation := mch.Constraints[0]
	if rotation.Type != model.CONSTRAINT_COPY_ROTATION || !rotation.Axes.X || rotation.Axes.Count() != 1 {
		t.Fatalf("curl constraint mismatch: got=%+v", rotation)
	}
	if rotation.OwnerSpace != model.SPACE_LOCAL || !rotation.UseOffset {
		t.Fatalf("curl constraint should be local offset: got=%+v", rotation)
	}
	source, _ := sk.GetByName("f_index.03.L")
	if sk.NameOf(source.Constraints[0].Target) != "CTRL-f_index.03.L" {
		t.Fatalf("source binding mismatch: got=%s", sk.NameOf(source.Constraints[0].Target))
	}
}

func TestGenerateThumbUsesConfiguredAxis(t *testing.T) {
	sk := newHandSkeleton()
	if _, err := NewThumb().Generate(sk, sk.IndexOf("thumb.01.L"), mrig.GenerateOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mch, _ := sk.GetByName("MCH-thumb.02.L")
	rotation := mch.Constraints[0]
	if !rotation.Axes.Z || !rotation.Invert.Z || rotation.Axes.X {
		t.Fatalf("thumb axis mismatch: got=%+v", rotation)
	}
	if !sk.Contains("CTRL-thumb_master.L") {
		t.Fatalf("expected thumb master")
	}
}

func TestGenerateSingleBoneIsStructuralError(t *testing.T) {
	sk := rigfixture.New("hand").Root("root").
		Bone("f_pinky.01.L", "root", mmath.NewVec3(0, 0, 0), mmath.NewVec3(0, 0.1, 0), false).
		Tag("f_pinky.01.L", "finger", nil).Skeleton()
	_, err := NewFinger().Generate(sk, sk.IndexOf("f_pinky.01.L"), mrig.GenerateOptions{})
	if !merrors.IsStructuralError(err) {
		t.Fatalf("expected structural error: got=%v", err)
	}
}
