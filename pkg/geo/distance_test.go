package geo

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	s := DefaultScale()

	tests := []struct {
		name       string
		dRow, dCol int
		dElev      float64
		wantMeters float64
	}{
		{name: "Same cell", wantMeters: 0},
		{name: "One column east", dCol: 1, wantMeters: 10.29},
		{name: "One column west", dCol: -1, wantMeters: 10.29},
		{name: "One row south", dRow: 1, wantMeters: 7.55},
		{name: "Pure climb", dElev: 3, wantMeters: 3},
		{
			name:       "Row step with climb",
			dRow:       1,
			dElev:      4,
			wantMeters: math.Sqrt(7.55*7.55 + 16),
		},
		{
			name:       "Diagonal displacement",
			dRow:       3,
			dCol:       4,
			wantMeters: math.Sqrt(3*7.55*3*7.55 + 4*10.29*4*10.29),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Distance(tt.dRow, tt.dCol, tt.dElev)
			if math.Abs(got-tt.wantMeters) > 1e-9 {
				t.Errorf("Distance = %f m, want %f m", got, tt.wantMeters)
			}
		})
	}
}

func TestDistanceSymmetric(t *testing.T) {
	s := Scale{RowMeters: 2, ColMeters: 5}
	a := s.Distance(3, -7, 12.5)
	b := s.Distance(-3, 7, -12.5)
	if a != b {
		t.Errorf("Distance not symmetric: %f vs %f", a, b)
	}
}

func TestPlanar(t *testing.T) {
	s := Scale{RowMeters: 3, ColMeters: 4}
	if got := s.Planar(1, 1); math.Abs(got-5) > 1e-12 {
		t.Errorf("Planar(1,1) = %f, want 5", got)
	}
	if got, want := s.Planar(2, 0), s.Distance(2, 0, 0); got != want {
		t.Errorf("Planar(2,0) = %f, want %f", got, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		scale   Scale
		wantErr bool
	}{
		{"default", DefaultScale(), false},
		{"zero row", Scale{RowMeters: 0, ColMeters: 1}, true},
		{"negative col", Scale{RowMeters: 1, ColMeters: -1}, true},
		{"NaN", Scale{RowMeters: math.NaN(), ColMeters: 1}, true},
		{"Inf", Scale{RowMeters: 1, ColMeters: math.Inf(1)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.scale.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func BenchmarkDistance(b *testing.B) {
	s := DefaultScale()
	for b.Loop() {
		s.Distance(1, 0, 2.5)
	}
}
