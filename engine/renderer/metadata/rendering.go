package metadata

import "fmt"

/** @brief The pipeline stage a render pass executes on. */
type PipelineStage int

const (
	/** @brief Rasterization pass. */
	PIPELINE_STAGE_GRAPHICS PipelineStage = 0x0
	/** @brief Compute dispatch pass. */
	PIPELINE_STAGE_COMPUTE PipelineStage = 0x1
	/** @brief Copy/blit pass. */
	PIPELINE_STAGE_TRANSFER PipelineStage = 0x2
)

/** @brief The kind of resource a render pass declares it uses. */
type ResourceUsageType int

const (
	RESOURCE_USAGE_COLOUR_ATTACHMENT ResourceUsageType = 0x1
	RESOURCE_USAGE_DEPTH_ATTACHMENT  ResourceUsageType = 0x2
	RESOURCE_USAGE_SAMPLED_TEXTURE   ResourceUsageType = 0x3
	RESOURCE_USAGE_STORAGE_BUFFER    ResourceUsageType = 0x4
)

/**
 * @brief The namespace prefix attachment resource names must carry, unless
 * they reference the canonical output target.
 */
const AttachmentNamespacePrefix = "Velum."

/** @brief The canonical swapchain output target name. */
const CanonicalOutputTarget = "ColorOutput"

/** @brief A single resource usage declared by a render pass. */
type ResourceUsage struct {
	ResourceUsageType ResourceUsageType
	Name              string
}

/**
 * @brief Static-ish description of a render pass, authored by the render
 * graph and handed to the command collection. Keyed uniquely by Index.
 */
type RenderPassMetadata struct {
	/** @brief The index of this pass; the key into the pass maps. */
	Index uint32
	/** @brief The Name of this pass. */
	Name string
	/** @brief The pipeline stage this pass runs on. */
	Stage PipelineStage
	/** @brief Depth-only shadow passes never run CPU occlusion queries. */
	ShadowPass bool
	/** @brief When set, the pass collects commands into a key-sorted bucket. */
	Sorted bool
	/** @brief The resources this pass declares. */
	Resources []*ResourceUsage
}

// SynthesizePassMetadata builds a default descriptor for passes registered
// without metadata.
func SynthesizePassMetadata(index uint32) *RenderPassMetadata {
	return &RenderPassMetadata{
		Index: index,
		Name:  fmt.Sprintf("pass_%d", index),
		Stage: PIPELINE_STAGE_GRAPHICS,
	}
}
