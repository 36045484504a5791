package material

import (
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestEmissive_Emission(t *testing.T) {
	tests := []struct {
		name     string
		emission core.Vec3
		emits    bool
	}{
		{
			name:     "Red emission",
			emission: core.NewVec3(1.0, 0.0, 0.0),
			emits:    true,
		},
		{
			name:     "Zero emission",
			emission: core.NewVec3(0.0, 0.0, 0.0),
			emits:    false,
		},
		{
			name:     "High intensity emission",
			emission: core.NewVec3(10.0, 5.0, 2.0),
			emits:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emissive := NewEmissive(tt.emission)

			if emissive.HasEmission() != tt.emits {
				t.Errorf("Expected HasEmission %v", tt.emits)
			}
			if emissive.Emission() != tt.emission {
				t.Errorf("Expected emission %v, got %v", tt.emission, emissive.Emission())
			}

			n := core.NewVec3(0, 1, 0)
			if !emissive.Eval(n, n, n).IsZero() {
				t.Error("Emissive materials should not reflect")
			}
			if emissive.PDF(n, n, n) != 0 {
				t.Error("Emissive materials should have zero pdf")
			}
		})
	}
}
