package vulkan

import (
	vk "github.com/goki/vulkan"
	"github.com/velum-engine/velum/engine/renderer/components"
	"github.com/velum-engine/velum/engine/renderer/indirect"
)

/**
 * @brief Resolves a (mesh, submesh) pair to its slice of the shared index
 * buffer. Owned by the mesh system; the batch only consumes it.
 */
type MeshDrawLookup func(meshID, submeshID uint32) (indexCount, firstIndex uint32, vertexOffset int32, ok bool)

/**
 * @brief Per-pass GPU command batch for the Vulkan backend. Filters the hot
 * subset of the scene's command buffer for its pass and emits one
 * vk.DrawIndexedIndirectCommand per surviving draw, ready for upload and
 * vkCmdDrawIndexedIndirect consumption.
 */
type VulkanCommandBatch struct {
	pass     uint32
	viewMask indirect.ViewMask
	lookup   MeshDrawLookup

	// Rebuilt every dispatch; kept around to avoid per-frame reallocation.
	hot   []indirect.HotCommand
	draws []vk.DrawIndexedIndirectCommand
}

func NewVulkanCommandBatch(passIndex uint32, viewMask indirect.ViewMask, lookup MeshDrawLookup) *VulkanCommandBatch {
	return &VulkanCommandBatch{
		pass:     passIndex,
		viewMask: viewMask,
		lookup:   lookup,
	}
}

func (b *VulkanCommandBatch) PassIndex() uint32 {
	return b.pass
}

/**
 * @brief The views this pass renders into. Feeds the multiview renderpass
 * creation (VkRenderPassMultiviewCreateInfo) on the backend side.
 */
func (b *VulkanCommandBatch) ViewMask() indirect.ViewMask {
	return b.viewMask
}

/**
 * @brief Builds this pass's indirect draw stream from the raw command
 * buffer. Commands addressed to other passes, disabled layers or unknown
 * meshes are filtered out. Returns the visible draw and instance counts.
 */
func (b *VulkanCommandBatch) RenderScene(commands []indirect.GPURenderCommand, camera *components.Camera) (uint32, uint32, error) {
	b.hot = b.hot[:0]
	b.draws = b.draws[:0]

	var visibleDraws, visibleInstances uint32
	for i := range commands {
		cmd := &commands[i]
		if cmd.RenderPass != b.pass {
			continue
		}
		if cmd.InstanceCount == 0 || cmd.LayerMask == 0 {
			continue
		}
		indexCount, firstIndex, vertexOffset, ok := b.lookup(cmd.MeshID, cmd.SubmeshID)
		if !ok {
			continue
		}

		// SourceIndex points back into the unsorted buffer so the per
		// instance data stages can find the cold record.
		b.hot = append(b.hot, cmd.ToHot(uint32(i)))
		b.draws = append(b.draws, vk.DrawIndexedIndirectCommand{
			IndexCount:    indexCount,
			InstanceCount: cmd.InstanceCount,
			FirstIndex:    firstIndex,
			VertexOffset:  vertexOffset,
			FirstInstance: visibleDraws,
		})
		visibleDraws++
		visibleInstances += cmd.InstanceCount
	}
	return visibleDraws, visibleInstances, nil
}

/** @brief The indirect draw records built by the last RenderScene call. */
func (b *VulkanCommandBatch) IndirectCommands() []vk.DrawIndexedIndirectCommand {
	return b.draws
}

/** @brief The hot command stream matching IndirectCommands, same order. */
func (b *VulkanCommandBatch) HotCommands() []indirect.HotCommand {
	return b.hot
}
