// 指示: miu200521358
package palm

import (
	"testing"

	"github.com/SAM-tak/BlenderGameRig-sub000/internal/rigfixture"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/merrors"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/mmath"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/model"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/mrig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPalmSkeleton(params model.Params) *model.Skeleton {
	return rigfixture.New("hand").Root("root").Arm("root", "L").Palm("hand.L", "L").Palm("hand.L", "R").
		Tag("palm.01.L", "palm", params).Skeleton()
}

func influencesOf(bone *model.Bone, kind model.ConstraintType) []float64 {
	out := make([]float64, 0, 1)
	for _, c := range bone.Constraints {
		if c.Type == kind {
			out = append(out, c.Influence)
		}
	}
	return out
}

func TestRotationInfluenceValues(t *testing.T) {
	want := []float64{0, 0.1738795, 0.2071068, 0.1326834}
	for i, expected := range want {
		assert.InDelta(t, expected, RotationInfluence(i, 4), 1e-4, "i=%d", i)
		assert.InDelta(t, float64(i)/4, LocationInfluence(i, 4), 1e-12, "i=%d", i)
	}
}

func TestGeneratePalmRamps(t *testing.T) {
	sk := newPalmSkeleton(nil)
	ri, err := New().Generate(sk, sk.IndexOf("palm.01.L"), mrig.GenerateOptions{})
	require.NoError(t, err)
	require.Len(t, ri.Source, 4)
	assert.Equal(t, []string{"CTRL-palm.L"}, ri.GeneratedNames(model.ROLE_CONTROL))

	ctrl, err := sk.GetByName("CTRL-palm.L")
	require.NoError(t, err)
	far, _ := sk.GetByName("palm.04.L")
	assert.True(t, ctrl.Head.NearEquals(far.Head, 1e-9))
	assert.Equal(t, "hand.L", sk.NameOf(ctrl.ParentIndex))

	rotation := []float64{0, 0.1738795, 0.2071068, 0.1326834}
	for i, index := range ri.Source {
		bone, _ := sk.Get(index)
		assert.Equal(t, []float64{float64(i) / 4}, influencesOf(bone, model.CONSTRAINT_COPY_LOCATION), bone.Name)
		assert.Equal(t, []float64{1}, influencesOf(bone, model.CONSTRAINT_COPY_SCALE), bone.Name)
		rot := influencesOf(bone, model.CONSTRAINT_COPY_ROTATION)
		require.Len(t, rot, 1)
		assert.InDelta(t, rotation[i], rot[0], 1e-4, bone.Name)
	}

	untouched, _ := sk.GetByName("palm.02.R")
	assert.Empty(t, untouched.Constraints)
}

func TestGeneratePalmRotationAxis(t *testing.T) {
	sk := newPalmSkeleton(model.Params{"palm_rotation_axis": "Z"})
	_, err := New().Generate(sk, sk.IndexOf("palm.01.L"), mrig.GenerateOptions{})
	require.NoError(t, err)
	bone, _ := sk.GetByName("palm.03.L")
	for _, c := range bone.Constraints {
		if c.Type == model.CONSTRAINT_COPY_ROTATION {
			assert.Equal(t, model.AxisMask{Z: true}, c.Axes)
		}
	}

	for _, value := range []any{"Y", "bogus", 3} {
		invalid := newPalmSkeleton(model.Params{"palm_rotation_axis": value})
		before := invalid.Len()
		_, err = New().Generate(invalid, invalid.IndexOf("palm.01.L"), mrig.GenerateOptions{})
		assert.True(t, merrors.IsStructuralError(err), "axis=%v", value)
		assert.Equal(t, before, invalid.Len(), "axis=%v", value)
	}
}

func TestGeneratePalmRequiresSibling(t *testing.T) {
	sk := rigfixture.New("hand").Root("root").Arm("root", "L").
		Bone("palm.01.L", "hand.L", mmath.NewVec3(0.76, 0, 1.4), mmath.NewVec3(0.86, 0, 1.4), false).
		Tag("palm.01.L", "palm", nil).Skeleton()
	_, err := New().Generate(sk, sk.IndexOf("palm.01.L"), mrig.GenerateOptions{})
	assert.True(t, merrors.IsStructuralError(err))
}
