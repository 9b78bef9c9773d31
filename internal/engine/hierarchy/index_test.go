package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSameOrSubclass(t *testing.T) {
	idx := New()
	idx.Record("Derived", "Base")
	idx.Record("Base", "NSObject")
	idx.Record("Leaf", "Derived")

	tests := []struct {
		reference string
		candidate string
		want      bool
	}{
		{"Base", "Base", true},
		{"Base", "Derived", true},
		{"Base", "Leaf", true},
		{"NSObject", "Leaf", true},
		{"Derived", "Base", false},
		{"Base", "Unrelated", false},
		{"Leaf", "NSObject", false},
	}

	for _, tc := range tests {
		got := idx.IsSameOrSubclass(tc.reference, tc.candidate)
		if got != tc.want {
			t.Errorf("IsSameOrSubclass(%q, %q) = %v, want %v", tc.reference, tc.candidate, got, tc.want)
		}
	}
}

func TestIsSameOrSubclass_CycleTerminates(t *testing.T) {
	idx := New()
	idx.Record("A", "B")
	idx.Record("B", "C")
	idx.Record("C", "A")

	assert.True(t, idx.IsSameOrSubclass("C", "A"))
	assert.False(t, idx.IsSameOrSubclass("Root", "A"))
	assert.Equal(t, []string{"B", "C"}, idx.Ancestors("A"))
}

func TestIsSameOrSubclass_SelfLoop(t *testing.T) {
	idx := New()
	idx.Record("Odd", "Odd")
	assert.False(t, idx.IsSameOrSubclass("Base", "Odd"))
	assert.Empty(t, idx.Ancestors("Odd"))
}

func TestRecordInvalidatesCachedChains(t *testing.T) {
	idx := NewWithCacheSize(8)
	idx.Record("Derived", "Base")
	assert.False(t, idx.IsSameOrSubclass("NSObject", "Derived"))

	idx.Record("Base", "NSObject")
	assert.True(t, idx.IsSameOrSubclass("NSObject", "Derived"))
}

func TestRecordOverwritesAndIgnoresEmpty(t *testing.T) {
	idx := New()
	idx.Record("View", "NSView")
	idx.Record("View", "UIView")
	idx.Record("", "UIView")
	idx.Record("Orphan", "")

	super, ok := idx.Superclass("View")
	assert.True(t, ok)
	assert.Equal(t, "UIView", super)
	assert.Equal(t, 1, idx.Len())
}
