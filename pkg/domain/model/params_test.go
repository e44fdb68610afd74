// 指示: miu200521358
package model

import "testing"

func TestParamsAccessors(t *testing.T) {
	params := Params{
		"pivot_pos":     float64(2),
		"neck_pos":      "5",
		"use_stretch":   true,
		"primary_axis":  "-z",
		"tweak_layers":  []any{1, 3},
		"fk_layers":     []any{true, false, true},
		"limb_type":     "leg",
		"unknown_value": 3.5,
	}
	if got := params.Int("pivot_pos", 0); got != 2 {
		t.Fatalf("int mismatch: got=%d", got)
	}
	if got := params.Int("neck_pos", 0); got != 5 {
		t.Fatalf("string int mismatch: got=%d", got)
	}
	if got := params.Int("missing", 7); got != 7 {
		t.Fatalf("default int mismatch: got=%d", got)
	}
	if !params.Bool("use_stretch", false) {
		t.Fatalf("bool mismatch")
	}
	if got := params.Axis("primary_axis", AXIS_X); got != AXIS_NEG_Z {
		t.Fatalf("axis mismatch: got=%s", got)
	}
	if got := params.String("limb_type", "arm"); got != "leg" {
		t.Fatalf("string mismatch: got=%s", got)
	}
	layers, ok := params.Layers("tweak_layers")
	if !ok || !layers[1] || !layers[3] || layers[0] {
		t.Fatalf("layer index mismatch: got=%v", layers.Indexes())
	}
	layers, ok = params.Layers("fk_layers")
	if !ok || !layers[0] || layers[1] || !layers[2] {
		t.Fatalf("layer flags mismatch: got=%v", layers.Indexes())
	}
	if _, ok := params.Layers("missing"); ok {
		t.Fatalf("missing layers should report false")
	}
}

func TestParamsLookupAxis(t *testing.T) {
	params := Params{"good": "z", "bad": "bogus", "number": 3}
	if got, err := params.LookupAxis("good", AXIS_X); err != nil || got != AXIS_Z {
		t.Fatalf("axis mismatch: got=%s err=%v", got, err)
	}
	if got, err := params.LookupAxis("missing", AXIS_X); err != nil || got != AXIS_X {
		t.Fatalf("default axis mismatch: got=%s err=%v", got, err)
	}
	for _, key := range []string{"bad", "number"} {
		if _, err := params.LookupAxis(key, AXIS_X); err == nil {
			t.Fatalf("expected error for %s", key)
		}
	}
}

func TestAxisVectorAndMask(t *testing.T) {
	if v := AXIS_NEG_Z.Vector(); v.Z != -1 {
		t.Fatalf("vector mismatch: got=%v", v)
	}
	if mask := AXIS_Z.Mask(); !mask.Z || mask.X || mask.Count() != 1 {
		t.Fatalf("mask mismatch: got=%+v", mask)
	}
	if _, err := ParseAxis("W"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestParseFeatureKind(t *testing.T) {
	cases := map[string]FeatureKind{
		"limb":                        FEATURE_LIMB,
		"limbs.super_limb":            FEATURE_LIMB,
		"pitchipoy.super_torso_turbo": FEATURE_TORSO,
		"Face":                        FEATURE_FACE,
		"pitchipoy.super_face":        FEATURE_FACE,
		"ring":                        FEATURE_RING,
	}
	for tag, want := range cases {
		got, err := ParseFeatureKind(tag)
		if err != nil || got != want {
			t.Fatalf("parse mismatch: tag=%s got=%s want=%s err=%v", tag, got, want, err)
		}
	}
	if _, err := ParseFeatureKind("basic.copy"); err == nil {
		t.Fatalf("expected unknown tag error")
	}
}

func TestRoleFromName(t *testing.T) {
	cases := map[string]Role{
		"CTRL-hand_ik.L": ROLE_CONTROL,
		"MCH-forearm.L":  ROLE_MECHANISM,
		"MCH_TGT-hand.L": ROLE_MECHANISM_TARGET,
		"TWK-spine.001":  ROLE_TWEAK,
		"upper_arm.L":    ROLE_SOURCE,
	}
	for name, want := range cases {
		if got := RoleFromName(name); got != want {
			t.Fatalf("role mismatch: name=%s got=%s want=%s", name, got, want)
		}
	}
}
