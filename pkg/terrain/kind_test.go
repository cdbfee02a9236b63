package terrain

import (
	"image/color"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		sample color.Color
		want   Kind
		wantOK bool
	}{
		{"open land", color.NRGBA{248, 148, 18, 255}, OpenLand, true},
		{"foot path", color.NRGBA{0, 0, 0, 255}, FootPath, true},
		{"lake", color.RGBA{0, 0, 255, 255}, LakeSwampMarsh, true},
		{"out of bounds", color.NRGBA{205, 0, 101, 255}, OutOfBounds, true},
		{"wrong alpha", color.NRGBA{248, 148, 18, 128}, 0, false},
		{"unknown", color.NRGBA{1, 2, 3, 255}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(tt.sample)
			if ok != tt.wantOK {
				t.Fatalf("Classify ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Classify = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassifyRGB(t *testing.T) {
	got, ok := ClassifyRGB(2, 136, 40)
	if !ok || got != WalkForest {
		t.Errorf("ClassifyRGB(2,136,40) = %s, %v; want WALK_FOREST, true", got, ok)
	}
	if _, ok := ClassifyRGB(9, 9, 9); ok {
		t.Error("ClassifyRGB(9,9,9) should not match")
	}
}

func TestCatalogInvariants(t *testing.T) {
	seen := make(map[color.NRGBA]Kind)
	names := make(map[string]Kind)
	for _, k := range Kinds() {
		c := k.Class()
		if c.Penalty < 1 {
			t.Errorf("%s penalty = %f, want >= 1", k, c.Penalty)
		}
		if prev, dup := seen[c.Color]; dup {
			t.Errorf("%s shares color with %s", k, prev)
		}
		seen[c.Color] = k

		if prev, dup := names[c.Name]; dup {
			t.Errorf("%s shares name with kind %d", c.Name, prev)
		}
		names[c.Name] = k
	}

	if !ImpassibleVegetation.Impassible() || !OutOfBounds.Impassible() {
		t.Error("impassible vegetation and out of bounds must be impassible")
	}
	if LakeSwampMarsh.Impassible() {
		t.Error("lake is passable at a penalty")
	}
	if LakeSwampMarsh.Penalty() != BlockedPenalty {
		t.Errorf("lake penalty = %f, want %d", LakeSwampMarsh.Penalty(), BlockedPenalty)
	}
}

func TestInvalidKind(t *testing.T) {
	k := Kind(200)
	if k.Valid() {
		t.Fatal("Kind(200) should be invalid")
	}
	if k.String() != "Kind(200)" {
		t.Errorf("String = %q", k.String())
	}
	defer func() {
		if recover() == nil {
			t.Error("Class on invalid kind should panic")
		}
	}()
	_ = k.Class()
}
