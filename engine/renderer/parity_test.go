package renderer

import (
	"strings"
	"testing"

	"github.com/velum-engine/velum/engine/renderer/indirect"
)

func parityCommands() []indirect.GPURenderCommand {
	return []indirect.GPURenderCommand{
		{MeshID: 1, MaterialID: 10, RenderPass: 0},
		{MeshID: 2, MaterialID: 20, RenderPass: 0},
		{MeshID: 3, MaterialID: 30, RenderPass: 1},
	}
}

func TestBuildSnapshotSamplesLeadingCommands(t *testing.T) {
	tests := []struct {
		name        string
		maxSamples  int
		wantSamples int
	}{
		{name: "all commands", maxSamples: 3, wantSamples: 3},
		{name: "truncated", maxSamples: 2, wantSamples: 2},
		{name: "more than available", maxSamples: 10, wantSamples: 3},
		{name: "zero", maxSamples: 0, wantSamples: 0},
		{name: "negative clamps to zero", maxSamples: -4, wantSamples: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := BuildSnapshot("vulkan", 3, 3, parityCommands(), tt.maxSamples)
			if len(snap.Samples) != tt.wantSamples {
				t.Errorf("sample count = %d, want %d", len(snap.Samples), tt.wantSamples)
			}
		})
	}
}

func TestAreEquivalentMatchingBackends(t *testing.T) {
	lhs := BuildSnapshot("vulkan", 3, 3, parityCommands(), 3)
	rhs := BuildSnapshot("d3d12", 3, 3, parityCommands(), 3)

	if ok, reason := AreEquivalent(lhs, rhs); !ok {
		t.Errorf("identical output reported mismatch: %s", reason)
	}
}

func TestAreEquivalentMismatches(t *testing.T) {
	base := parityCommands()

	tests := []struct {
		name       string
		mutate     func(snap *BackendSnapshot)
		wantReason string
	}{
		{
			name:       "visible count",
			mutate:     func(s *BackendSnapshot) { s.VisibleCount = 99 },
			wantReason: "visible count",
		},
		{
			name:       "draw count",
			mutate:     func(s *BackendSnapshot) { s.DrawCount = 99 },
			wantReason: "draw count",
		},
		{
			name:       "sample count",
			mutate:     func(s *BackendSnapshot) { s.Samples = s.Samples[:2] },
			wantReason: "sample count",
		},
		{
			name:       "mesh id",
			mutate:     func(s *BackendSnapshot) { s.Samples[1].MeshID = 99 },
			wantReason: "sample 1 mesh id",
		},
		{
			name:       "material id",
			mutate:     func(s *BackendSnapshot) { s.Samples[2].MaterialID = 99 },
			wantReason: "sample 2 material id",
		},
		{
			name:       "render pass",
			mutate:     func(s *BackendSnapshot) { s.Samples[0].RenderPass = 99 },
			wantReason: "sample 0 render pass",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lhs := BuildSnapshot("vulkan", 3, 3, base, 3)
			rhs := BuildSnapshot("d3d12", 3, 3, base, 3)
			tt.mutate(&rhs)

			ok, reason := AreEquivalent(lhs, rhs)
			if ok {
				t.Fatal("mismatch not detected")
			}
			if !strings.Contains(reason, tt.wantReason) {
				t.Errorf("reason = %q, want it to name %q", reason, tt.wantReason)
			}
		})
	}
}
