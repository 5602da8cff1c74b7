package metadata

import (
	"github.com/velum-engine/velum/engine/renderer/components"
	"github.com/velum-engine/velum/engine/renderer/indirect"
)

/**
 * @brief The per-pass backend object GPU dispatch delegates to. One batch
 * exists per registered pass. The backend consumes the scene's raw command
 * buffer and issues the actual indirect draw calls; this core never touches
 * the graphics API directly.
 */
type GPUCommandBatch interface {
	/** @brief The pass this batch renders. */
	PassIndex() uint32
	/**
	 * @brief Renders the given command buffer for this pass and reports the
	 * visible draw and instance counts back for telemetry.
	 */
	RenderScene(commands []indirect.GPURenderCommand, camera *components.Camera) (visibleDraws, visibleInstances uint32, err error)
}
