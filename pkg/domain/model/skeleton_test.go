// 指示: miu200521358
package model

import (
	"testing"

	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/merrors"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/mmath"
)

func newTestSkeleton(t *testing.T, names ...string) *Skeleton {
	t.Helper()
	sk := NewSkeleton("test")
	for i, name := range names {
		bone := NewBoneByName(name)
		bone.Head = mmath.NewVec3(0, float64(i), 0)
		bone.Tail = mmath.NewVec3(0, float64(i+1), 0)
		if i > 0 {
			bone.ParentIndex = BoneIndex(i - 1)
			bone.Connected = true
		}
		if _, err := sk.AddBone(bone); err != nil {
			t.Fatalf("add bone failed: %v", err)
		}
	}
	return sk
}

func TestSkeletonAddBoneRejectsDuplicateName(t *testing.T) {
	sk := newTestSkeleton(t, "spine")
	_, err := sk.AddBone(NewBoneByName("spine"))
	if !merrors.IsNameConflictError(err) {
		t.Fatalf("expected name conflict: got=%v", err)
	}
}

func TestSkeletonNewBoneResolvesUniqueName(t *testing.T) {
	sk := newTestSkeleton(t, "upper_arm.L")
	first := sk.NewBone(ROLE_CONTROL, "upper_arm.L")
	second := sk.NewBone(ROLE_CONTROL, "upper_arm.L")
	if first.Name != "CTRL-upper_arm.L" {
		t.Fatalf("expected prefixed name: got=%s", first.Name)
	}
	if second.Name != "CTRL-upper_arm.L.001" {
		t.Fatalf("expected ordinal name: got=%s", second.Name)
	}
	if first.Index() == second.Index() || sk.Len() != 3 {
		t.Fatalf("expected bones registered: len=%d", sk.Len())
	}
	if first.Deform {
		t.Fatalf("generated bones should not deform")
	}
}

func TestSkeletonSetParentDetectsCycle(t *testing.T) {
	sk := newTestSkeleton(t, "a", "b", "c")
	err := sk.SetParent(0, 2, false)
	if !merrors.IsCycleError(err) {
		t.Fatalf("expected cycle error: got=%v", err)
	}
	if err := sk.SetParent(2, 0, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if children := sk.Children(0); len(children) != 2 {
		t.Fatalf("expected two children: got=%v", children)
	}
}

func TestSkeletonDescendantsDepthFirst(t *testing.T) {
	sk := newTestSkeleton(t, "a", "b", "c")
	got := sk.Descendants(0)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("descendants mismatch: got=%v", got)
	}
}

func TestSkeletonSnapshotRestore(t *testing.T) {
	sk := newTestSkeleton(t, "a", "b")
	if err := sk.AddProperty(0, NewRateProperty("rate", 0.5, "")); err != nil {
		t.Fatalf("add property failed: %v", err)
	}
	snapshot, err := sk.Snapshot()
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}

	ctrl := sk.NewBone(ROLE_CONTROL, "a")
	if _, err := sk.AddConstraint(1, NewConstraint(CONSTRAINT_COPY_TRANSFORMS, ctrl.Index())); err != nil {
		t.Fatalf("add constraint failed: %v", err)
	}
	if err := sk.AddDriver(Driver{
		Target:    DriverTarget{Bone: 1, Constraint: 0},
		Kind:      DRIVER_SUM,
		Variables: []DriverVariable{{Name: "var", Bone: 0, Property: "rate"}},
	}); err != nil {
		t.Fatalf("add driver failed: %v", err)
	}
	sk.Values()[0].Head = mmath.NewVec3(9, 9, 9)

	if err := sk.Restore(snapshot); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if sk.Len() != 2 || sk.Contains("CTRL-a") {
		t.Fatalf("expected generated bone removed: len=%d", sk.Len())
	}
	if len(sk.Drivers()) != 0 {
		t.Fatalf("expected drivers removed")
	}
	bone, err := sk.GetByName("b")
	if err != nil {
		t.Fatalf("get by name failed: %v", err)
	}
	if bone.Index() != 1 || len(bone.Constraints) != 0 {
		t.Fatalf("restored bone mismatch: index=%d constraints=%d", bone.Index(), len(bone.Constraints))
	}
	if !sk.Values()[0].Head.NearEquals(mmath.NewVec3(0, 0, 0), 1e-9) {
		t.Fatalf("expected head restored: got=%v", sk.Values()[0].Head)
	}
	if _, ok := sk.Values()[0].Property("rate"); !ok {
		t.Fatalf("expected property restored")
	}
}

func TestSkeletonAddDriverValidatesReferences(t *testing.T) {
	sk := newTestSkeleton(t, "a", "b")
	err := sk.AddDriver(Driver{Target: DriverTarget{Bone: 1, Constraint: 0}, Kind: DRIVER_SUM})
	if err == nil {
		t.Fatalf("expected missing constraint error")
	}
	if _, err := sk.AddConstraint(1, NewConstraint(CONSTRAINT_COPY_ROTATION, 0)); err != nil {
		t.Fatalf("add constraint failed: %v", err)
	}
	err = sk.AddDriver(Driver{
		Target:    DriverTarget{Bone: 1, Constraint: 0},
		Kind:      DRIVER_SUM,
		Variables: []DriverVariable{{Name: "var", Bone: 0, Property: "missing"}},
	})
	if err == nil {
		t.Fatalf("expected missing property error")
	}
}

func TestSkeletonAddConstraintRequiresTarget(t *testing.T) {
	sk := newTestSkeleton(t, "a")
	if _, err := sk.AddConstraint(0, NewConstraint(CONSTRAINT_DAMPED_TRACK, 5)); err == nil {
		t.Fatalf("expected invalid target error")
	}
	if _, err := sk.AddConstraint(0, NewConstraint(CONSTRAINT_MAINTAIN_VOLUME, NoBone)); err != nil {
		t.Fatalf("targetless constraint should be accepted: %v", err)
	}
}
