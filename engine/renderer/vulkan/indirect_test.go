package vulkan

import (
	"testing"

	"github.com/velum-engine/velum/engine/renderer/indirect"
)

func testLookup(meshID, submeshID uint32) (uint32, uint32, int32, bool) {
	if meshID == 404 {
		return 0, 0, 0, false
	}
	return meshID * 3, meshID * 100, int32(submeshID), true
}

func TestVulkanCommandBatchBuildsIndirectStream(t *testing.T) {
	commands := []indirect.GPURenderCommand{
		{RenderPass: 0, MeshID: 2, SubmeshID: 1, InstanceCount: 2, LayerMask: 1},
		{RenderPass: 1, MeshID: 3, InstanceCount: 1, LayerMask: 1},   // other pass
		{RenderPass: 0, MeshID: 4, InstanceCount: 0, LayerMask: 1},   // no instances
		{RenderPass: 0, MeshID: 5, InstanceCount: 1, LayerMask: 0},   // no layers
		{RenderPass: 0, MeshID: 404, InstanceCount: 1, LayerMask: 1}, // unknown mesh
		{RenderPass: 0, MeshID: 6, SubmeshID: 2, InstanceCount: 3, LayerMask: 1},
	}

	batch := NewVulkanCommandBatch(0, indirect.ViewMaskFromViewCount(2), testLookup)
	draws, instances, err := batch.RenderScene(commands, nil)
	if err != nil {
		t.Fatalf("RenderScene: %v", err)
	}
	if draws != 2 || instances != 5 {
		t.Fatalf("draws=%d instances=%d, want 2/5", draws, instances)
	}

	stream := batch.IndirectCommands()
	hot := batch.HotCommands()
	if len(stream) != 2 || len(hot) != 2 {
		t.Fatalf("stream=%d hot=%d records, want 2 each", len(stream), len(hot))
	}

	// First surviving command is the original index 0.
	if hot[0].SourceIndex != 0 || hot[1].SourceIndex != 5 {
		t.Errorf("source indices = %d,%d, want 0,5", hot[0].SourceIndex, hot[1].SourceIndex)
	}
	if stream[0].IndexCount != 6 || stream[0].InstanceCount != 2 || stream[0].FirstIndex != 200 {
		t.Errorf("first record = %+v", stream[0])
	}
	if stream[0].VertexOffset != 1 {
		t.Errorf("vertex offset = %d, want 1", stream[0].VertexOffset)
	}
	// FirstInstance numbers the visible draws in emission order.
	if stream[0].FirstInstance != 0 || stream[1].FirstInstance != 1 {
		t.Errorf("first instances = %d,%d, want 0,1", stream[0].FirstInstance, stream[1].FirstInstance)
	}
}

func TestVulkanCommandBatchReusesBuffers(t *testing.T) {
	commands := []indirect.GPURenderCommand{
		{RenderPass: 0, MeshID: 1, InstanceCount: 1, LayerMask: 1},
	}
	batch := NewVulkanCommandBatch(0, indirect.ViewMask{}, testLookup)

	for i := 0; i < 3; i++ {
		draws, _, err := batch.RenderScene(commands, nil)
		if err != nil {
			t.Fatalf("RenderScene: %v", err)
		}
		if draws != 1 {
			t.Fatalf("dispatch %d: draws=%d, want 1", i, draws)
		}
		if len(batch.IndirectCommands()) != 1 {
			t.Fatalf("dispatch %d: stream length %d, want 1 (stale records kept?)", i, len(batch.IndirectCommands()))
		}
	}
}

func TestVulkanCommandBatchViewMask(t *testing.T) {
	mask := indirect.ViewMaskFromViewCount(2)
	batch := NewVulkanCommandBatch(3, mask, testLookup)
	if batch.PassIndex() != 3 {
		t.Errorf("pass index = %d, want 3", batch.PassIndex())
	}
	if batch.ViewMask() != mask {
		t.Errorf("view mask = %+v, want %+v", batch.ViewMask(), mask)
	}
}
