// 指示: miu200521358
package mrig

import (
	"math"
	"testing"

	"github.com/SAM-tak/BlenderGameRig-sub000/internal/rigfixture"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/mmath"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/model"
)

func TestOrientExtension(t *testing.T) {
	bone := model.NewBoneByName("hips")
	bone.Head = mmath.NewVec3(0, 0, 1)
	bone.Tail = mmath.NewVec3(0, 0, 1.2)

	OrientExtension(bone, mmath.UnitY, 0.5, false)
	if !bone.Tail.NearEquals(mmath.NewVec3(0, 0.5, 1), 1e-9) {
		t.Fatalf("tail mismatch: got=%v", bone.Tail)
	}

	bone.Tail = mmath.NewVec3(0, 0, 1.2)
	OrientExtension(bone, mmath.UnitY, 0.5, true)
	if !bone.Head.NearEquals(mmath.NewVec3(0, 0, 1.2), 1e-9) {
		t.Fatalf("reversed head mismatch: got=%v", bone.Head)
	}
	if !bone.Tail.NearEquals(mmath.NewVec3(0, 0.5, 1.2), 1e-9) {
		t.Fatalf("reversed tail mismatch: got=%v", bone.Tail)
	}
}

func TestShrinkAndSetLength(t *testing.T) {
	bone := model.NewBoneByName("mch")
	bone.Head = mmath.NewVec3(1, 0, 0)
	bone.Tail = mmath.NewVec3(1, 2, 0)
	ShrinkLength(bone, QuarterLength)
	if math.Abs(bone.Length()-0.5) > 1e-9 || !bone.Head.NearEquals(mmath.NewVec3(1, 0, 0), 1e-9) {
		t.Fatalf("shrink mismatch: head=%v tail=%v", bone.Head, bone.Tail)
	}
	SetLength(bone, 3)
	if !bone.Tail.NearEquals(mmath.NewVec3(1, 3, 0), 1e-9) {
		t.Fatalf("set length mismatch: got=%v", bone.Tail)
	}
	MoveHead(bone, mmath.NewVec3(0, 0, 0))
	if !bone.Tail.NearEquals(mmath.NewVec3(0, 3, 0), 1e-9) {
		t.Fatalf("move head mismatch: got=%v", bone.Tail)
	}
}

func TestChainLengthAndCentroid(t *testing.T) {
	sk := rigfixture.New("spine").Spine("", 5).Skeleton()
	chain := ConnectedChain(sk, sk.IndexOf("spine"), 0)
	if got := ChainLength(sk, chain); math.Abs(got-0.6) > 1e-9 {
		t.Fatalf("chain length mismatch: got=%f want=0.6", got)
	}
	centroid := Centroid(sk, chain)
	if !centroid.NearEquals(mmath.NewVec3(0, 0, 1.24), 1e-9) {
		t.Fatalf("centroid mismatch: got=%v", centroid)
	}
	if mid := Midpoint(mmath.NewVec3(0, 0, 0), mmath.NewVec3(2, 2, 2)); !mid.NearEquals(mmath.NewVec3(1, 1, 1), 1e-9) {
		t.Fatalf("midpoint mismatch: got=%v", mid)
	}
}
