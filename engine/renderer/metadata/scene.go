package metadata

import (
	"github.com/velum-engine/velum/engine/renderer/indirect"
)

/** @brief The slice of a scene the GPU dispatch path consumes. */
type Scene interface {
	Name() string
}

/**
 * @brief A 3D visual scene: owns the raw, unsorted GPU command buffer and
 * receives visible draw/instance telemetry back after dispatch.
 */
type Scene3D struct {
	SceneName string
	/** @brief The raw per-object command buffer, in source-index order. */
	Commands []indirect.GPURenderCommand
	/** @brief Draws that survived culling/occlusion last dispatch. */
	VisibleDrawCount uint32
	/** @brief Instances those draws expanded to. */
	VisibleInstanceCount uint32
}

func (s *Scene3D) Name() string {
	return s.SceneName
}
