// 指示: miu200521358
package ring

import (
	"testing"

	"github.com/SAM-tak/BlenderGameRig-sub000/internal/rigfixture"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/merrors"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/mmath"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/model"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/naming"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/mrig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ringCenter = mmath.NewVec3(0, -0.1, 1.6)

func newFullRing(count int) *model.Skeleton {
	return rigfixture.New("mouth").Root("root").Ring("root", "mouth", "", count, 0.05, ringCenter).
		Tag("mouth", "ring", model.Params{"use_stretch": true}).Skeleton()
}

func copyLocationInfluences(bone *model.Bone) []float64 {
	out := make([]float64, 0, 2)
	for _, c := range bone.Constraints {
		if c.Type == model.CONSTRAINT_COPY_LOCATION {
			out = append(out, c.Influence)
		}
	}
	return out
}

func TestQuarterBoundaries(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2, 3}, QuarterBoundaries(4))
	assert.Equal(t, []int{0, 2, 3, 5}, QuarterBoundaries(6))
	assert.Equal(t, []int{0, 3, 6, 9}, QuarterBoundaries(12))
}

func TestGenerateRingRampsSumToOne(t *testing.T) {
	sk := newFullRing(12)
	ri, err := New().Generate(sk, sk.IndexOf("mouth"), mrig.GenerateOptions{})
	require.NoError(t, err)
	controls := ri.Generated[model.ROLE_CONTROL]
	require.Len(t, controls, 12)

	boundaries := map[int]bool{0: true, 3: true, 6: true, 9: true}
	for j, index := range controls {
		bone, _ := sk.Get(index)
		influences := copyLocationInfluences(bone)
		if boundaries[j] {
			assert.Empty(t, influences, "boundary control %s", bone.Name)
			continue
		}
		require.Len(t, influences, 2, "control %s", bone.Name)
		assert.InDelta(t, 1.0, influences[0]+influences[1], 1e-9)
	}

	first, _ := sk.Get(controls[1])
	second, _ := sk.Get(controls[2])
	towardNext := []float64{copyLocationInfluences(first)[1], copyLocationInfluences(second)[1]}
	assert.Less(t, towardNext[0], towardNext[1])
	assert.InDelta(t, 1.0/3.0, towardNext[0], 1e-6)
}

func TestGenerateRingPushesControlsOutward(t *testing.T) {
	sk := newFullRing(8)
	ri, err := New().Generate(sk, sk.IndexOf("mouth"), mrig.GenerateOptions{})
	require.NoError(t, err)
	centroid := mrig.Centroid(sk, ri.Source)
	for i, index := range ri.Generated[model.ROLE_CONTROL] {
		ctrl, _ := sk.Get(index)
		org, _ := sk.Get(ri.Source[i])
		assert.Greater(t, ctrl.Head.Distance(centroid), org.Head.Distance(centroid))
		assert.InDelta(t, org.Length(), ctrl.Length(), 1e-9)
	}

	mch, err := sk.GetByName("MCH-mouth.007")
	require.NoError(t, err)
	require.Len(t, mch.Constraints, 2)
	assert.Equal(t, "CTRL-mouth", sk.NameOf(mch.Constraints[0].Target))
	assert.Equal(t, model.CONSTRAINT_STRETCH_TO, mch.Constraints[1].Type)
}

func TestGenerateMirroredRing(t *testing.T) {
	sk := rigfixture.New("lips").Root("root").
		Ring("root", "lip", "L", 3, 0.05, ringCenter).
		Ring("root", "lip", "R", 3, 0.05, ringCenter).
		Tag("lip.L", "ring", model.Params{"mirror": true}).Skeleton()
	ri, err := New().Generate(sk, sk.IndexOf("lip.L"), mrig.GenerateOptions{})
	require.NoError(t, err)

	names := ri.GeneratedNames(model.ROLE_CONTROL)
	require.Len(t, names, 6)
	for i := 0; i < 3; i++ {
		mirrored, ok := naming.MirrorName(names[i])
		require.True(t, ok)
		assert.Equal(t, mirrored, names[5-i])
	}
	left, _ := sk.GetByName("CTRL-lip.L.001")
	right, _ := sk.GetByName("CTRL-lip.R.001")
	assert.InDeltaSlice(t, copyLocationInfluences(left), reversed(copyLocationInfluences(right)), 1e-9)
}

func reversed(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, value := range values {
		out[len(values)-1-i] = value
	}
	return out
}

func TestGenerateRingTopologyErrors(t *testing.T) {
	sk := newFullRing(3)
	_, err := New().Generate(sk, sk.IndexOf("mouth"), mrig.GenerateOptions{})
	assert.True(t, merrors.IsStructuralError(err))

	lonely := rigfixture.New("lips").Root("root").
		Ring("root", "lip", "L", 3, 0.05, ringCenter).
		Tag("lip.L", "ring", model.Params{"mirror": true}).Skeleton()
	_, err = New().Generate(lonely, lonely.IndexOf("lip.L"), mrig.GenerateOptions{})
	assert.True(t, merrors.IsStructuralError(err))
}
