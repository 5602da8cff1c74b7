package renderer

import (
	"fmt"

	"github.com/velum-engine/velum/engine/renderer/indirect"
)

/** @brief One sampled draw: just the identity triple, nothing backend-specific. */
type DrawSample struct {
	MeshID     uint32
	MaterialID uint32
	RenderPass uint32
}

/**
 * @brief A comparable capture of a backend's GPU-visible draw output. Two
 * backends rendering the same scene must produce equivalent snapshots.
 */
type BackendSnapshot struct {
	Backend      string
	VisibleCount uint32
	DrawCount    uint32
	Samples      []DrawSample
}

/**
 * @brief Samples up to maxSamples leading commands together with the
 * backend-reported totals. maxSamples below zero is treated as zero.
 */
func BuildSnapshot(backendName string, visibleCount, drawCount uint32, commands []indirect.GPURenderCommand, maxSamples int) BackendSnapshot {
	if maxSamples < 0 {
		maxSamples = 0
	}
	if maxSamples > len(commands) {
		maxSamples = len(commands)
	}
	snapshot := BackendSnapshot{
		Backend:      backendName,
		VisibleCount: visibleCount,
		DrawCount:    drawCount,
		Samples:      make([]DrawSample, 0, maxSamples),
	}
	for i := 0; i < maxSamples; i++ {
		snapshot.Samples = append(snapshot.Samples, DrawSample{
			MeshID:     commands[i].MeshID,
			MaterialID: commands[i].MaterialID,
			RenderPass: commands[i].RenderPass,
		})
	}
	return snapshot
}

/**
 * @brief Structurally compares two snapshots: visible count, draw count,
 * sample count, then each sampled triple positionally. The first mismatch
 * short-circuits with a diagnostic naming the diverging field.
 */
func AreEquivalent(lhs, rhs BackendSnapshot) (bool, string) {
	if lhs.VisibleCount != rhs.VisibleCount {
		return false, fmt.Sprintf("visible count differs: %s=%d %s=%d", lhs.Backend, lhs.VisibleCount, rhs.Backend, rhs.VisibleCount)
	}
	if lhs.DrawCount != rhs.DrawCount {
		return false, fmt.Sprintf("draw count differs: %s=%d %s=%d", lhs.Backend, lhs.DrawCount, rhs.Backend, rhs.DrawCount)
	}
	if len(lhs.Samples) != len(rhs.Samples) {
		return false, fmt.Sprintf("sample count differs: %s=%d %s=%d", lhs.Backend, len(lhs.Samples), rhs.Backend, len(rhs.Samples))
	}
	for i := range lhs.Samples {
		l, r := lhs.Samples[i], rhs.Samples[i]
		if l.MeshID != r.MeshID {
			return false, fmt.Sprintf("sample %d mesh id differs: %s=%d %s=%d", i, lhs.Backend, l.MeshID, rhs.Backend, r.MeshID)
		}
		if l.MaterialID != r.MaterialID {
			return false, fmt.Sprintf("sample %d material id differs: %s=%d %s=%d", i, lhs.Backend, l.MaterialID, rhs.Backend, r.MaterialID)
		}
		if l.RenderPass != r.RenderPass {
			return false, fmt.Sprintf("sample %d render pass differs: %s=%d %s=%d", i, lhs.Backend, l.RenderPass, rhs.Backend, r.RenderPass)
		}
	}
	return true, ""
}
