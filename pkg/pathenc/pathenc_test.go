package pathenc

import "testing"

func TestEncode(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://github.com/foo/bar", "https____github.com_foo_bar"},
		{"v1.2.3", "v1.2.3"},
		{"a/b:c", "a_b__c"},
	}
	for _, c := range cases {
		if got := Encode(c.in); got != c.want {
			t.Errorf("Encode(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestEncodeNonASCII(t *testing.T) {
	got := Encode("é")
	want := "ue9"
	if got != want {
		t.Errorf("Encode(é) = %q, want %q", got, want)
	}
}

func TestEncodeDistinctInputsDiffer(t *testing.T) {
	inputs := []string{
		"https://example.test/x",
		"https://example.test/y",
		"v1", "v2", "main", "refs/heads/main",
	}
	seen := map[string]string{}
	for _, in := range inputs {
		enc := Encode(in)
		if other, ok := seen[enc]; ok && other != in {
			t.Fatalf("collision: %q and %q both encode to %q", in, other, enc)
		}
		seen[enc] = in
	}
}

func TestDepsHashDeterministic(t *testing.T) {
	a := DepsHash([]string{"foo==1.0", "bar"})
	b := DepsHash([]string{"foo==1.0", "bar"})
	if a != b {
		t.Fatalf("DepsHash not deterministic: %q != %q", a, b)
	}
}

func TestDepsHashSeparatesBoundaries(t *testing.T) {
	a := DepsHash([]string{"ab", "c"})
	b := DepsHash([]string{"a", "bc"})
	if a == b {
		t.Fatalf("DepsHash collided across element boundary: %q", a)
	}
}

func TestDepsHashEmpty(t *testing.T) {
	if DepsHash(nil) == DepsHash([]string{"x"}) {
		t.Fatal("empty deps hash should differ from non-empty")
	}
}
