package events

import "testing"

func TestSimplifyTypeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"NSString *", "NSString"},
		{"Derived *__strong", "Derived"},
		{"id<NSCopying>", "NSCopying"},
		{"id<A,B> _Nonnull", "A,B"},
		{"id<NSCopying, NSCoding> _Nonnull", "NSCopying,NSCoding"},
		{"id<Open", "Open"},
		{"NSArray<NSString *> *", "NSString"},
		{"id", "id"},
		{"Weird>x<", "Weird>x<"},
		{"  CGRect  ", "CGRect"},
	}

	for _, tc := range tests {
		if got := SimplifyTypeName(tc.in); got != tc.want {
			t.Errorf("SimplifyTypeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSplitProtocolList(t *testing.T) {
	got := SplitProtocolList("A, B,,C")
	if len(got) != 3 || got[0] != "A" || got[1] != "B" || got[2] != "C" {
		t.Fatalf("unexpected split: %v", got)
	}
}
