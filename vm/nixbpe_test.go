package vm

import "testing"

func TestNixbpeModeClassification(t *testing.T) {
	cases := []struct {
		nb                          Nixbpe
		simple, indirect, immediate bool
	}{
		{Nixbpe{N: true, I: true}, true, false, false},
		{Nixbpe{N: true, I: false}, false, true, false},
		{Nixbpe{N: false, I: true}, false, false, true},
		{Nixbpe{N: false, I: false}, false, false, false},
	}
	for _, c := range cases {
		if got := c.nb.Simple(); got != c.simple {
			t.Errorf("%+v.Simple() = %v, want %v", c.nb, got, c.simple)
		}
		if got := c.nb.Indirect(); got != c.indirect {
			t.Errorf("%+v.Indirect() = %v, want %v", c.nb, got, c.indirect)
		}
		if got := c.nb.Immediate(); got != c.immediate {
			t.Errorf("%+v.Immediate() = %v, want %v", c.nb, got, c.immediate)
		}
	}
}

func TestNixbpeZeroValueIsLegacyDefault(t *testing.T) {
	var nb Nixbpe
	if !nb.Neither() {
		t.Fatal("zero-value Nixbpe should satisfy Neither()")
	}
}
