package indirect

import (
	"testing"

	"github.com/velum-engine/velum/engine/math"
)

func sampleCommand() GPURenderCommand {
	cmd := GPURenderCommand{
		WorldMatrix:     math.NewMat4Identity(),
		PrevWorldMatrix: math.NewMat4Identity(),
		MeshID:          7,
		SubmeshID:       2,
		MaterialID:      11,
		InstanceCount:   3,
		RenderPass:      1,
		ShaderID:        42,
		RenderDistance:  123.5,
		LayerMask:       0xF0F0,
		LODLevel:        2,
		Flags:           COMMAND_FLAG_CASTS_SHADOW | COMMAND_FLAG_SKINNED | COMMAND_FLAG_DEFERRED,
	}
	cmd.WorldMatrix.Data[12] = 4 // translation so the transforms are not trivial
	cmd.PrevWorldMatrix.Data[12] = 3.5
	cmd.SetBoundingSphere(math.NewVec3(1, 2, 3), 4)
	return cmd
}

func TestHotColdRoundTrip(t *testing.T) {
	original := sampleCommand()

	hot := original.ToHot(9)
	cold := original.ToCold()
	merged := FromHotCold(hot, cold)

	if merged != original {
		t.Errorf("round trip altered the command:\n got %+v\nwant %+v", merged, original)
	}
	if hot.SourceIndex != 9 {
		t.Errorf("hot source index = %d, want 9", hot.SourceIndex)
	}

	// The duplicated scalars must agree between the halves.
	if hot.ShaderID != cold.ShaderID {
		t.Errorf("shader id diverged: hot=%d cold=%d", hot.ShaderID, cold.ShaderID)
	}
	if hot.RenderDistance != cold.RenderDistance {
		t.Errorf("render distance diverged: hot=%f cold=%f", hot.RenderDistance, cold.RenderDistance)
	}
}

func TestFromHotColdTakesColdScalarsAsCanonical(t *testing.T) {
	original := sampleCommand()
	hot := original.ToHot(0)
	cold := original.ToCold()

	// Simulate a stale hot copy; the cold values must win.
	hot.ShaderID = 999
	hot.RenderDistance = 1e6

	merged := FromHotCold(hot, cold)
	if merged.ShaderID != original.ShaderID {
		t.Errorf("merged shader id = %d, want cold copy %d", merged.ShaderID, original.ShaderID)
	}
	if merged.RenderDistance != original.RenderDistance {
		t.Errorf("merged render distance = %f, want cold copy %f", merged.RenderDistance, original.RenderDistance)
	}
}

func TestSetBoundingSpherePacksRadius(t *testing.T) {
	var cmd GPURenderCommand
	cmd.SetBoundingSphere(math.NewVec3(-1, 2, 8), 2.5)

	want := math.NewVec4(-1, 2, 8, 2.5)
	if cmd.BoundingSphere != want {
		t.Errorf("bounding sphere = %+v, want %+v", cmd.BoundingSphere, want)
	}
}

func TestCommandFlagsDoNotAlias(t *testing.T) {
	flags := []CommandFlag{
		COMMAND_FLAG_TRANSPARENT,
		COMMAND_FLAG_CASTS_SHADOW,
		COMMAND_FLAG_SKINNED,
		COMMAND_FLAG_DYNAMIC,
		COMMAND_FLAG_DOUBLE_SIDED,
		COMMAND_FLAG_RECEIVES_SHADOWS,
		COMMAND_FLAG_WIREFRAME,
		COMMAND_FLAG_INSTANCED,
		COMMAND_FLAG_ANIMATED,
		COMMAND_FLAG_BLEND_SHAPES,
		COMMAND_FLAG_FRUSTUM_CULLED,
		COMMAND_FLAG_OCCLUSION_CULLED,
		COMMAND_FLAG_LOD_ENABLED,
		COMMAND_FLAG_CUSTOM_SHADER,
		COMMAND_FLAG_DEFERRED,
		COMMAND_FLAG_FORWARD,
		COMMAND_FLAG_UNLIT,
	}
	seen := map[CommandFlag]bool{}
	var all CommandFlag
	for _, f := range flags {
		if f == 0 || f&(f-1) != 0 {
			t.Errorf("flag %#x is not a single bit", f)
		}
		if seen[f] {
			t.Errorf("flag %#x aliases another flag", f)
		}
		seen[f] = true
		all |= f
	}
	// Bits 5-7 are reserved for expansion.
	const reserved = CommandFlag(0x7 << 5)
	if all&reserved != 0 {
		t.Errorf("a flag landed in the reserved bits 5-7: %#x", all&reserved)
	}
}
