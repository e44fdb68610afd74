// 指示: miu200521358
package mdriver

import (
	"testing"

	"github.com/SAM-tak/BlenderGameRig-sub000/internal/rigfixture"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/model"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/feature/limb"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/feature/tentacle"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/mrig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluatorMatchesDirectEvaluation(t *testing.T) {
	evaluator := NewEvaluator()
	drivers := []model.Driver{
		{Kind: model.DRIVER_SUM, Variables: []model.DriverVariable{{Name: "var"}, {Name: "var_001"}}},
		{Kind: model.DRIVER_AVERAGE, Variables: []model.DriverVariable{{Name: "var"}, {Name: "var_001"}, {Name: "var_002"}}},
		{Kind: model.DRIVER_POLYNOMIAL, Variables: []model.DriverVariable{{Name: "var"}}, Coefficients: []float64{1, -1}},
		{Kind: model.DRIVER_POLYNOMIAL, Variables: []model.DriverVariable{{Name: "var"}, {Name: "var_001"}}, Coefficients: []float64{0.5, 0, 2}},
	}
	values := map[string]float64{"var": 0.25, "var_001": 0.5, "var_002": 1}
	for _, driver := range drivers {
		got, err := evaluator.Evaluate(driver, values)
		require.NoError(t, err, driver.Expression())
		assert.InDelta(t, driver.Evaluate(values), got, 1e-9, driver.Expression())
	}
}

func TestEvaluatorRejectsBrokenExpression(t *testing.T) {
	evaluator := NewEvaluator()
	assert.Error(t, evaluator.Compile("(var + "))
	assert.NoError(t, evaluator.Compile("(var + var_001) / 2"))
}

func TestLimbBlendIsComplete(t *testing.T) {
	sk := rigfixture.New("arm").Root("root").Arm("root", "L").Tag("upper_arm.L", "limb", nil).Skeleton()
	_, err := limb.New().Generate(sk, sk.IndexOf("upper_arm.L"), mrig.GenerateOptions{RootBoneName: "root"})
	require.NoError(t, err)
	evaluator := NewEvaluator()

	owner := "CTRL-upper_arm_fk.L"
	require.True(t, sk.Contains(owner))
	for _, rate := range []float64{0, 0.3, 1} {
		overrides := map[string]float64{PropertyKey(owner, model.PropIkFkRate): rate}
		for _, name := range []string{"upper_arm.L", "forearm.L", "hand.L"} {
			bone, err := sk.GetByName(name)
			require.NoError(t, err)
			ik, fk := bone.Constraints[0], bone.Constraints[1]
			require.Equal(t, "IK", ik.Name)
			require.Equal(t, "FK", fk.Name)

			driver := findDriver(t, sk, bone.Index(), 1)
			influence, err := evaluator.Evaluate(driver, DefaultValues(sk, driver, overrides))
			require.NoError(t, err)
			// IK を全量で写した後に FK を rate で重ねるため、FK の寄与は rate と一致する。
			assert.InDelta(t, rate, influence, 1e-9, name)
			assert.InDelta(t, 1.0, ik.Influence, 1e-9, name)
		}
	}
}

func TestGeneratedDriversCompileAndStayInRange(t *testing.T) {
	sk := rigfixture.New("tail").Root("root").Tentacle("root", "tail", 4).
		Tag("tail", "tentacle", model.Params{"use_physics": true}).Skeleton()
	_, err := tentacle.New().Generate(sk, sk.IndexOf("tail"), mrig.GenerateOptions{RootBoneName: "root"})
	require.NoError(t, err)
	evaluator := NewEvaluator()

	require.NotEmpty(t, sk.Drivers())
	for _, driver := range sk.Drivers() {
		require.NoError(t, evaluator.Compile(driver.Expression()))
		value, err := evaluator.EvaluateDefaults(sk, driver)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, value, 0.0, driver.Expression())
		assert.LessOrEqual(t, value, 1.0, driver.Expression())
	}
}

func findDriver(t *testing.T, sk *model.Skeleton, bone model.BoneIndex, constraint int) model.Driver {
	t.Helper()
	for _, driver := range sk.Drivers() {
		if driver.Target.Bone == bone && driver.Target.Constraint == constraint {
			return driver
		}
	}
	t.Fatalf("driver not found: bone=%s constraint=%d", sk.NameOf(bone), constraint)
	return model.Driver{}
}
