// 指示: miu200521358
package naming

import "testing"

func existsIn(names ...string) func(string) bool {
	set := map[string]struct{}{}
	for _, name := range names {
		set[name] = struct{}{}
	}
	return func(name string) bool {
		_, ok := set[name]
		return ok
	}
}

func TestUniqueNameAppendsAndIncrements(t *testing.T) {
	cases := []struct {
		candidate string
		existing  []string
		want      string
	}{
		{candidate: "CTRL-chin", existing: nil, want: "CTRL-chin"},
		{candidate: "CTRL-chin", existing: []string{"CTRL-chin"}, want: "CTRL-chin.001"},
		{candidate: "CTRL-chin", existing: []string{"CTRL-chin", "CTRL-chin.001"}, want: "CTRL-chin.002"},
		{candidate: "lid.T.L.003", existing: []string{"lid.T.L.003"}, want: "lid.T.L.004"},
		{candidate: "nose.999", existing: []string{"nose.999"}, want: "nose.1000"},
		{candidate: "bone.0001", existing: []string{"bone.0001"}, want: "bone.0001.001"},
		{candidate: "bone.0001", existing: []string{"bone.0001", "bone.0001.001"}, want: "bone.0001.002"},
	}
	for _, tc := range cases {
		got := UniqueName(tc.candidate, existsIn(tc.existing...))
		if got != tc.want {
			t.Fatalf("unique name mismatch for %s: got=%s want=%s", tc.candidate, got, tc.want)
		}
	}
}

func TestUniqueNameIsIdempotentWithoutReservation(t *testing.T) {
	exists := existsIn("MCH-jaw_master", "MCH-jaw_master.001")
	first := UniqueName("MCH-jaw_master", exists)
	second := UniqueName("MCH-jaw_master", exists)
	if first != second || first != "MCH-jaw_master.002" {
		t.Fatalf("expected stable next suffix: first=%s second=%s", first, second)
	}
}

func TestRolePrefixesNeverCollide(t *testing.T) {
	bases := []string{"x", "TGT-x", "-x", "_TGT-x"}
	seen := map[string]string{}
	for _, prefix := range []string{PrefixControl, PrefixMechanism, PrefixMechanismTarget, PrefixTweak} {
		for _, base := range bases {
			name := Prefixed(prefix, base)
			gotPrefix, gotBase := SplitPrefix(name)
			if gotPrefix != prefix || gotBase != base {
				t.Fatalf("split mismatch: name=%s got=(%s,%s)", name, gotPrefix, gotBase)
			}
			if other, ok := seen[name]; ok && other != prefix {
				t.Fatalf("prefix collision: %s from %s and %s", name, other, prefix)
			}
			seen[name] = prefix
		}
	}
}

func TestSplitOrdinal(t *testing.T) {
	stem, ordinal, ok := SplitOrdinal("spine.004")
	if !ok || stem != "spine" || ordinal != 4 {
		t.Fatalf("split mismatch: got=(%s,%d,%v)", stem, ordinal, ok)
	}
	if _, _, ok := SplitOrdinal("palm.01"); ok {
		t.Fatalf("expected two digit suffix to be ignored")
	}
	if _, _, ok := SplitOrdinal("bone.0001"); ok {
		t.Fatalf("expected four digit suffix to be ignored")
	}
}
