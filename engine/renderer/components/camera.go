package components

import (
	"github.com/velum-engine/velum/engine/math"
)

/**
 * @brief Represents a camera that can be used for
 * a variety of things, especially rendering. Ideally,
 * these are created and managed by the camera system.
 */
type Camera struct {
	/**
	 * @brief The position of this camera.
	 * NOTE: Do not set this directly, use SetPosition() instead
	 * so the derived matrices are recalculated when needed.
	 */
	Position math.Vec3
	/** @brief The normalized forward direction of this camera. */
	ForwardDir math.Vec3
	/** @brief Near clip plane distance. */
	NearClip float32
	/** @brief Far clip plane distance. */
	FarClip float32
	/** @brief Internal flag used to determine when the view matrix needs to be rebuilt. */
	IsDirty bool
	/**
	 * @brief The view matrix of this camera.
	 * NOTE: IMPORTANT: Do not get this directly, use GetView() instead
	 * so the view matrix is recalculated when needed.
	 */
	ViewMatrix math.Mat4
	/** @brief The projection matrix of this camera. */
	ProjectionMatrix math.Mat4
	/** @brief Last frame's view-projection, kept for motion vectors. */
	PrevViewProjection math.Mat4
}

/** @brief The name of the default camera. */
const DEFAULT_CAMERA_NAME string = "default"

func NewCamera() *Camera {
	camera := &Camera{}
	camera.Reset()
	return camera
}

func (c *Camera) Reset() {
	c.Position = math.NewVec3Zero()
	c.ForwardDir = math.NewVec3(0, 0, -1)
	c.NearClip = 0.1
	c.FarClip = 1000.0
	c.IsDirty = false
	c.ViewMatrix = math.NewMat4Identity()
	c.ProjectionMatrix = math.NewMat4Identity()
	c.PrevViewProjection = math.NewMat4Identity()
}

func (c *Camera) GetPosition() math.Vec3 {
	return c.Position
}

func (c *Camera) SetPosition(position math.Vec3) {
	c.Position = position
	c.IsDirty = true
}

func (c *Camera) Forward() math.Vec3 {
	return c.ForwardDir
}

func (c *Camera) GetView() math.Mat4 {
	return c.ViewMatrix
}

// GetViewProjection returns the combined view-projection matrix.
func (c *Camera) GetViewProjection() math.Mat4 {
	return c.ProjectionMatrix.Mul(c.ViewMatrix)
}

// EndFrame stores the current view-projection as the previous one.
func (c *Camera) EndFrame() {
	c.PrevViewProjection = c.GetViewProjection()
}
