// 指示: miu200521358
package minteractor

import (
	"errors"
	"testing"

	"github.com/SAM-tak/BlenderGameRig-sub000/internal/rigfixture"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/merrors"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/mmath"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/model"
)

func newArmSkeleton() *model.Skeleton {
	return rigfixture.New("arm").Root("root").Arm("root", "L").Skeleton()
}

func TestValidateSkeletonAcceptsMetarig(t *testing.T) {
	if err := ValidateSkeleton(newArmSkeleton(), &stubEvaluator{}); err != nil {
		t.Fatalf("metarig should be valid: %v", err)
	}
}

func TestValidateSkeletonDetectsCycle(t *testing.T) {
	sk := newArmSkeleton()
	upper, _ := sk.GetByName("upper_arm.L")
	upper.ParentIndex = sk.IndexOf("hand.L")
	upper.Connected = false

	err := ValidateSkeleton(sk, nil)
	if !merrors.IsCycleError(err) {
		t.Fatalf("cycle error expected: %v", err)
	}
}

func TestValidateSkeletonDetectsSelfParent(t *testing.T) {
	sk := newArmSkeleton()
	hand, _ := sk.GetByName("hand.L")
	hand.ParentIndex = hand.Index()
	hand.Connected = false

	if err := ValidateSkeleton(sk, nil); !merrors.IsCycleError(err) {
		t.Fatalf("cycle error expected: %v", err)
	}
}

func TestValidateSkeletonDetectsDetachedConnectedBone(t *testing.T) {
	sk := newArmSkeleton()
	hand, _ := sk.GetByName("hand.L")
	hand.Head = hand.Head.Added(mmath.NewVec3(0, 0, 0.1))

	if err := ValidateSkeleton(sk, nil); err == nil {
		t.Fatalf("connected mismatch should fail")
	}
}

func TestValidateSkeletonDetectsDuplicateName(t *testing.T) {
	sk := newArmSkeleton()
	hand, _ := sk.GetByName("hand.L")
	hand.Name = "forearm.L"

	if err := ValidateSkeleton(sk, nil); !merrors.IsNameConflictError(err) {
		t.Fatalf("name conflict expected: %v", err)
	}
}

func TestValidateSkeletonReportsDriverCompileError(t *testing.T) {
	sk := newArmSkeleton()
	sk.Values()[sk.IndexOf("upper_arm.L")].RigType = "limb"
	if _, err := DefaultRegistry().builders[model.FEATURE_LIMB].Generate(sk, sk.IndexOf("upper_arm.L"), optionsForTest()); err != nil {
		t.Fatalf("limb generation failed: %v", err)
	}
	compileErr := errors.New("unsupported token")

	err := ValidateSkeleton(sk, &stubEvaluator{err: compileErr})
	if !errors.Is(err, compileErr) {
		t.Fatalf("driver compile error expected: %v", err)
	}
	if err := ValidateSkeleton(sk, &stubEvaluator{}); err != nil {
		t.Fatalf("generated limb should validate: %v", err)
	}
}
