package metadata

import (
	"github.com/velum-engine/velum/engine/core"
	"github.com/velum-engine/velum/engine/math"
	"github.com/velum-engine/velum/engine/renderer/components"
	"github.com/velum-engine/velum/engine/renderer/indirect"
)

/** @brief A lifecycle hook fired around a command's draw. */
type RenderHook func()

/**
 * @brief A per-object draw request collected by the render command system.
 * Commands are produced each frame an object is renderable, accumulate in
 * the updating buffer and are drawn from the rendering buffer after the
 * next swap.
 */
type RenderCommand interface {
	/** @brief A stable unique identifier for this command instance. */
	ID() string
	/** @brief The render pass this command belongs to. Fixed at construction. */
	PassIndex() uint32
	IsEnabled() bool
	SetEnabled(enabled bool)
	/** @brief The ordering key: layer index for 2D, squared camera distance for 3D. */
	RenderKey() float32
	/**
	 * @brief Returns -1 when this command's key is smaller than the other's,
	 * +1 otherwise. A non-matching variant's key is treated as 0. NOTE: this
	 * is not a total order; there is no equal outcome. Containers that need
	 * genuine equality must use a stable secondary key.
	 */
	CompareTo(other RenderCommand) int
	/** @brief Executes the draw, firing the pre/post hooks around it. */
	Render(camera *components.Camera) error
	/** @brief Flips any internal double-buffered state. Called once per buffer swap. */
	SwapBuffers()
}

/**
 * @brief Capability interface implemented by commands that carry mesh
 * geometry. The collection checks this instead of probing concrete types.
 */
type MeshSource interface {
	MeshPayload() *MeshPayload
}

/** @brief The mesh geometry a mesh-bearing command draws. */
type MeshPayload struct {
	Mesh          *Mesh
	Material      *Material
	InstanceCount uint32
	/**
	 * @brief Index of this command in the GPU command buffer.
	 * InvalidCommandIndex when the pass runs in pure-CPU mode, so it must
	 * never be used as an occlusion query slot.
	 */
	GPUCommandIndex uint32
}

/** @brief Common state shared by the 2D and 3D command variants. */
type RenderCommandBase struct {
	/** @brief Unique instance id, assigned at construction. */
	InstanceID string
	Pass       uint32
	Enabled    bool
	/** @brief The draw callback, supplied by the scene-side producer. */
	Draw func(camera *components.Camera) error

	preRender  []RenderHook
	postRender []RenderHook
}

func newRenderCommandBase(passIndex uint32, draw func(camera *components.Camera) error) RenderCommandBase {
	return RenderCommandBase{
		InstanceID: core.NewInstanceID(),
		Pass:       passIndex,
		Enabled:    true,
		Draw:       draw,
	}
}

func (b *RenderCommandBase) ID() string               { return b.InstanceID }
func (b *RenderCommandBase) PassIndex() uint32        { return b.Pass }
func (b *RenderCommandBase) IsEnabled() bool          { return b.Enabled }
func (b *RenderCommandBase) SetEnabled(enabled bool)  { b.Enabled = enabled }
func (b *RenderCommandBase) OnPreRender(h RenderHook) { b.preRender = append(b.preRender, h) }
func (b *RenderCommandBase) OnPostRender(h RenderHook) {
	b.postRender = append(b.postRender, h)
}

func (b *RenderCommandBase) Render(camera *components.Camera) error {
	for _, hook := range b.preRender {
		hook()
	}
	if b.Draw != nil {
		if err := b.Draw(camera); err != nil {
			return err
		}
	}
	for _, hook := range b.postRender {
		hook()
	}
	return nil
}

/** @brief A command ordered by integer layer index, ascending. */
type RenderCommand2D struct {
	RenderCommandBase
	/** @brief The layer this command sorts into. Ties keep container order. */
	Layer int32
}

func NewRenderCommand2D(passIndex uint32, layer int32, draw func(camera *components.Camera) error) *RenderCommand2D {
	return &RenderCommand2D{
		RenderCommandBase: newRenderCommandBase(passIndex, draw),
		Layer:             layer,
	}
}

func (c *RenderCommand2D) RenderKey() float32 {
	return float32(c.Layer)
}

func (c *RenderCommand2D) CompareTo(other RenderCommand) int {
	var otherKey float32
	if o, ok := other.(*RenderCommand2D); ok {
		otherKey = o.RenderKey()
	}
	if c.RenderKey() < otherKey {
		return -1
	}
	return 1
}

// Layer changes take effect immediately; nothing is double buffered here.
func (c *RenderCommand2D) SwapBuffers() {}

/** @brief A command ordered by squared camera-space distance, ascending. */
type RenderCommand3D struct {
	RenderCommandBase
	/** @brief Mesh geometry, if this command draws any. */
	Payload *MeshPayload

	// World position is double buffered: producers write one slot while the
	// render thread reads the other.
	positions       [2]math.Vec3
	write           int
	distanceSquared float32
}

func NewRenderCommand3D(passIndex uint32, payload *MeshPayload, draw func(camera *components.Camera) error) *RenderCommand3D {
	return &RenderCommand3D{
		RenderCommandBase: newRenderCommandBase(passIndex, draw),
		Payload:           payload,
	}
}

// NewMeshPayload builds a payload for the pure-CPU path: the GPU command
// index starts out as the invalid sentinel and is only assigned when the
// command enters a GPU command buffer.
func NewMeshPayload(mesh *Mesh, material *Material, instanceCount uint32) *MeshPayload {
	return &MeshPayload{
		Mesh:            mesh,
		Material:        material,
		InstanceCount:   instanceCount,
		GPUCommandIndex: indirect.InvalidCommandIndex,
	}
}

func (c *RenderCommand3D) MeshPayload() *MeshPayload {
	return c.Payload
}

/**
 * @brief Recomputes the squared camera-space distance used as the ordering
 * key and stores the new world position in the producer-side slot.
 */
func (c *RenderCommand3D) UpdateRenderDistance(worldPosition math.Vec3, camera *components.Camera) {
	c.positions[c.write] = worldPosition
	c.distanceSquared = camera.GetPosition().DistanceSquared(worldPosition)
}

/** @brief The world position visible to the render thread. */
func (c *RenderCommand3D) WorldPosition() math.Vec3 {
	return c.positions[1-c.write]
}

func (c *RenderCommand3D) RenderKey() float32 {
	return c.distanceSquared
}

func (c *RenderCommand3D) CompareTo(other RenderCommand) int {
	var otherKey float32
	if o, ok := other.(*RenderCommand3D); ok {
		otherKey = o.RenderKey()
	}
	if c.RenderKey() < otherKey {
		return -1
	}
	return 1
}

func (c *RenderCommand3D) SwapBuffers() {
	// The freshly written slot becomes the read slot; seed the next write
	// slot with the current value so producers that skip a frame keep it.
	read := c.write
	c.write = 1 - c.write
	c.positions[c.write] = c.positions[read]
}
