package eq

import "testing"

func TestDefaultBands(t *testing.T) {
	bands := DefaultBands()
	wantFreq := [NumBands]float64{33, 100, 350, 1350, 5000, 16000}
	wantQ := [NumBands]float64{0.707, 1, 1, 1, 1, 0.707}
	wantRole := [NumBands]Role{RoleHighpass, RolePeak, RolePeak, RolePeak, RolePeak, RoleLowpass}

	for i, b := range bands {
		if b.Index != i || b.Frequency != wantFreq[i] || b.Q != wantQ[i] || b.Role != wantRole[i] {
			t.Errorf("band %d = %+v", i, b)
		}

		if b.GainDB != 0 || !b.Enabled {
			t.Errorf("band %d: gain %v enabled %v, want 0 and true", i, b.GainDB, b.Enabled)
		}
	}
}

func TestBandClamp(t *testing.T) {
	l := DefaultLimits()

	tests := []struct {
		name string
		in   Band
		want Band
	}{
		{
			name: "inside",
			in:   Band{Frequency: 1000, GainDB: 3, Q: 2},
			want: Band{Frequency: 1000, GainDB: 3, Q: 2},
		},
		{
			name: "below",
			in:   Band{Frequency: 5, GainDB: -40, Q: 0},
			want: Band{Frequency: 20, GainDB: -18, Q: 0.1},
		},
		{
			name: "above",
			in:   Band{Frequency: 30000, GainDB: 24, Q: 50},
			want: Band{Frequency: 20000, GainDB: 18, Q: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Clamp(l); got != tt.want {
				t.Fatalf("Clamp() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRoleString(t *testing.T) {
	tests := map[Role]string{
		RoleHighpass:  "highpass",
		RolePeak:      "peak",
		RoleLowpass:   "lowpass",
		RoleLowShelf:  "lowshelf",
		RoleHighShelf: "highshelf",
		Role(99):      "unknown",
	}

	for r, want := range tests {
		if got := r.String(); got != want {
			t.Errorf("Role(%d).String() = %q, want %q", int(r), got, want)
		}
	}

	if RoleHighpass.UsesGain() || RoleLowpass.UsesGain() || !RolePeak.UsesGain() || !RoleLowShelf.UsesGain() {
		t.Fatal("UsesGain mismatch")
	}
}
