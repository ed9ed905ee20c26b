package entity

import "testing"

func TestTimeIntervalDuration(t *testing.T) {
	tests := []struct {
		name     string
		interval TimeInterval
		want     int
	}{
		{"normal", TimeInterval{StartMinute: 540, EndMinute: 600}, 60},
		{"empty", TimeInterval{StartMinute: 540, EndMinute: 540}, 0},
		{"inverted clamps to zero", TimeInterval{StartMinute: 600, EndMinute: 540}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.interval.Duration(); got != tt.want {
				t.Errorf("Duration() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTimeIntervalOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b TimeInterval
		want TimeInterval
	}{
		{
			name: "partial overlap",
			a:    TimeInterval{StartMinute: 540, EndMinute: 600},
			b:    TimeInterval{StartMinute: 570, EndMinute: 630},
			want: TimeInterval{StartMinute: 570, EndMinute: 600},
		},
		{
			name: "contained",
			a:    TimeInterval{StartMinute: 480, EndMinute: 720},
			b:    TimeInterval{StartMinute: 540, EndMinute: 600},
			want: TimeInterval{StartMinute: 540, EndMinute: 600},
		},
		{
			name: "disjoint",
			a:    TimeInterval{StartMinute: 480, EndMinute: 540},
			b:    TimeInterval{StartMinute: 600, EndMinute: 660},
			want: TimeInterval{StartMinute: 600, EndMinute: 540},
		},
		{
			name: "touching endpoints",
			a:    TimeInterval{StartMinute: 480, EndMinute: 540},
			b:    TimeInterval{StartMinute: 540, EndMinute: 600},
			want: TimeInterval{StartMinute: 540, EndMinute: 540},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Overlap(tt.b)
			if got != tt.want {
				t.Errorf("Overlap() = %+v, want %+v", got, tt.want)
			}

			// Overlap is commutative.
			rev := tt.b.Overlap(tt.a)
			if rev != got {
				t.Errorf("Overlap not symmetric: %+v vs %+v", got, rev)
			}
		})
	}
}

func TestDisjointOverlapHasZeroDuration(t *testing.T) {
	a := TimeInterval{StartMinute: 480, EndMinute: 540}
	b := TimeInterval{StartMinute: 600, EndMinute: 660}

	if d := a.Overlap(b).Duration(); d != 0 {
		t.Errorf("disjoint overlap duration = %d, want 0", d)
	}
}
