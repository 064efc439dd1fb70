package regulation

import "testing"

func TestResolve(t *testing.T) {
	statute := []string{"G24", "PEI", "NAL"}
	tests := []struct {
		projectType string
		want        Regulation
	}{
		{"G24", NationalStatute},
		{"PEI", NationalStatute},
		{"NAL", NationalStatute},
		{"UEX", StateDecree},
		{"PCO", StateDecree},
		{"JEX", StateDecree},
		{"", StateDecree},
		{"definitely-unknown", StateDecree},
	}
	for _, tt := range tests {
		if got := Resolve(tt.projectType, statute); got != tt.want {
			t.Errorf("Resolve(%q) = %s, want %s", tt.projectType, got, tt.want)
		}
	}
}

func TestResolveEmptyMembership(t *testing.T) {
	if got := Resolve("G24", nil); got != StateDecree {
		t.Errorf("Resolve with empty membership = %s, want StateDecree", got)
	}
}
