package indirect

import (
	"github.com/velum-engine/velum/engine/math"
)

/** @brief A bitmask of per-command render attributes, mirrored by shader code. */
type CommandFlag uint32

const (
	COMMAND_FLAG_TRANSPARENT  CommandFlag = 1 << 0
	COMMAND_FLAG_CASTS_SHADOW CommandFlag = 1 << 1
	COMMAND_FLAG_SKINNED      CommandFlag = 1 << 2
	COMMAND_FLAG_DYNAMIC      CommandFlag = 1 << 3
	COMMAND_FLAG_DOUBLE_SIDED CommandFlag = 1 << 4

	// Bits 5-7 are reserved for expansion.

	COMMAND_FLAG_RECEIVES_SHADOWS CommandFlag = 1 << 8
	COMMAND_FLAG_WIREFRAME        CommandFlag = 1 << 9
	COMMAND_FLAG_INSTANCED        CommandFlag = 1 << 10
	COMMAND_FLAG_ANIMATED         CommandFlag = 1 << 11
	COMMAND_FLAG_BLEND_SHAPES     CommandFlag = 1 << 12
	COMMAND_FLAG_FRUSTUM_CULLED   CommandFlag = 1 << 13
	COMMAND_FLAG_OCCLUSION_CULLED CommandFlag = 1 << 14
	COMMAND_FLAG_LOD_ENABLED      CommandFlag = 1 << 15
	COMMAND_FLAG_CUSTOM_SHADER    CommandFlag = 1 << 16
	COMMAND_FLAG_DEFERRED         CommandFlag = 1 << 17
	COMMAND_FLAG_FORWARD          CommandFlag = 1 << 18
	COMMAND_FLAG_UNLIT            CommandFlag = 1 << 19
)

/** @brief A sentinel command index meaning "not assigned by the GPU path". */
const InvalidCommandIndex uint32 = 0xFFFFFFFF

const (
	/** @brief The contractual size of a full GPU render command, in bytes. */
	GPURenderCommandSize = 192
	/** @brief The contractual size of the hot command subset, in bytes. */
	HotCommandSize = 64
	/** @brief The contractual size of the cold command subset, in bytes. */
	ColdCommandSize = 136
)

/**
 * @brief A single GPU-dispatchable render command. The field order and the
 * total size are a wire contract with the culling and indirect-build compute
 * shaders; consumers address fields by byte offset.
 */
type GPURenderCommand struct {
	/** @brief The current-frame world transform. */
	WorldMatrix math.Mat4
	/** @brief The previous-frame world transform, used for motion vectors. */
	PrevWorldMatrix math.Mat4
	/** @brief Bounding sphere: xyz is the center, w is the radius. */
	BoundingSphere math.Vec4
	MeshID         uint32
	SubmeshID      uint32
	MaterialID     uint32
	InstanceCount  uint32
	RenderPass     uint32
	ShaderID       uint32
	RenderDistance float32
	LayerMask      uint32
	LODLevel       uint32
	Flags          CommandFlag
	Reserved0      uint32
	Reserved1      uint32
}

/**
 * @brief The subset of a render command read every frame by the culling,
 * visibility and indirect-build stages. Kept to a single cache line pair.
 */
type HotCommand struct {
	BoundingSphere math.Vec4
	MeshID         uint32
	SubmeshID      uint32
	MaterialID     uint32
	InstanceCount  uint32
	RenderPass     uint32
	LayerMask      uint32
	Flags          CommandFlag
	LODLevel       uint32
	ShaderID       uint32
	RenderDistance float32
	/**
	 * @brief Stable index back into the original, unsorted command array.
	 * Culling produces a filtered and reordered set; later stages use this
	 * to reach the original per-instance data.
	 */
	SourceIndex uint32
	Reserved    uint32
}

/**
 * @brief The rarely-read-per-frame remainder. ShaderID and RenderDistance
 * duplicate the hot copies so stages that walk cold data alone stay cache
 * friendly. Transforms plus the two duplicated scalars account for every
 * byte of the 136-byte contract.
 */
type ColdCommand struct {
	WorldMatrix     math.Mat4
	PrevWorldMatrix math.Mat4
	ShaderID        uint32
	RenderDistance  float32
}

/**
 * @brief Extracts the hot subset of the command. sourceIndex is the
 * position of this command in the original unsorted array.
 */
func (c *GPURenderCommand) ToHot(sourceIndex uint32) HotCommand {
	return HotCommand{
		BoundingSphere: c.BoundingSphere,
		MeshID:         c.MeshID,
		SubmeshID:      c.SubmeshID,
		MaterialID:     c.MaterialID,
		InstanceCount:  c.InstanceCount,
		RenderPass:     c.RenderPass,
		LayerMask:      c.LayerMask,
		Flags:          c.Flags,
		LODLevel:       c.LODLevel,
		ShaderID:       c.ShaderID,
		RenderDistance: c.RenderDistance,
		SourceIndex:    sourceIndex,
	}
}

/**
 * @brief Extracts the cold subset of the command, carrying the duplicated
 * scalars along.
 */
func (c *GPURenderCommand) ToCold() ColdCommand {
	return ColdCommand{
		WorldMatrix:     c.WorldMatrix,
		PrevWorldMatrix: c.PrevWorldMatrix,
		ShaderID:        c.ShaderID,
		RenderDistance:  c.RenderDistance,
	}
}

/**
 * @brief Recomposes a full command from its hot and cold halves. The cold
 * copies of ShaderID and RenderDistance are taken as canonical; the caller
 * is responsible for keeping the two halves consistent.
 */
func FromHotCold(hot HotCommand, cold ColdCommand) GPURenderCommand {
	return GPURenderCommand{
		WorldMatrix:     cold.WorldMatrix,
		PrevWorldMatrix: cold.PrevWorldMatrix,
		BoundingSphere:  hot.BoundingSphere,
		MeshID:          hot.MeshID,
		SubmeshID:       hot.SubmeshID,
		MaterialID:      hot.MaterialID,
		InstanceCount:   hot.InstanceCount,
		RenderPass:      hot.RenderPass,
		ShaderID:        cold.ShaderID,
		RenderDistance:  cold.RenderDistance,
		LayerMask:       hot.LayerMask,
		LODLevel:        hot.LODLevel,
		Flags:           hot.Flags,
	}
}

/**
 * @brief Packs a 3-component center and a radius into the command's single
 * sphere slot. There is no separate radius field.
 */
func (c *GPURenderCommand) SetBoundingSphere(center math.Vec3, radius float32) {
	c.BoundingSphere = center.ToVec4(radius)
}
