package metadata

import (
	"github.com/velum-engine/velum/engine/renderer/components"
)

/** @brief How draw visibility is decided for a pass. */
type OcclusionMode int

const (
	/** @brief Every command renders unconditionally. */
	OCCLUSION_MODE_NONE OcclusionMode = 0x0
	/**
	 * @brief Draws are gated through asynchronous CPU occlusion queries.
	 * Query results may lag by one or more frames; the gate owns that
	 * latency, not this core.
	 */
	OCCLUSION_MODE_ASYNC_CPU_QUERY OcclusionMode = 0x1
)

/**
 * @brief The protocol the command collection calls into to decide, per
 * draw, whether to submit geometry. Query execution lives in the occlusion
 * subsystem; this core only drives the session/query lifecycle. The gate is
 * injected at collection construction.
 */
type OcclusionGate interface {
	/** @brief The gating mode currently active. */
	Mode() OcclusionMode
	/** @brief Opens a per-pass session sized to the pass's command count. */
	BeginPass(passIndex uint32, camera *components.Camera, commandCount int)
	/**
	 * @brief Reports whether the command at the given stable index should
	 * render this frame. May answer from a previous frame's query results.
	 */
	ShouldRender(passIndex uint32, index int) bool
	/** @brief Opens the occlusion query bracketing a draw. */
	BeginQuery(passIndex uint32, index int)
	/** @brief Closes the occlusion query. Must be paired with BeginQuery. */
	EndQuery(passIndex uint32, index int)
}

/** @brief A gate that renders everything. Used when occlusion is disabled. */
type NullOcclusionGate struct{}

func (NullOcclusionGate) Mode() OcclusionMode                       { return OCCLUSION_MODE_NONE }
func (NullOcclusionGate) BeginPass(uint32, *components.Camera, int) {}
func (NullOcclusionGate) ShouldRender(uint32, int) bool             { return true }
func (NullOcclusionGate) BeginQuery(uint32, int)                    {}
func (NullOcclusionGate) EndQuery(uint32, int)                      {}
