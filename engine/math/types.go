package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector
type Vec4 struct {
	X, Y, Z, W float32
}

/** @brief a 4x4 matrix, typically used to represent object transformations. */
type Mat4 struct {
	/** @brief The matrix elements */
	Data [16]float32
}

/**
 * @brief Represents the extents of a 3d object.
 */
type Extents3D struct {
	/** @brief The minimum extents of the object. */
	Min Vec3
	/** @brief The maximum extents of the object. */
	Max Vec3
}

/** @brief Returns the midpoint of the extents. */
func (e Extents3D) Center() Vec3 {
	return e.Min.Add(e.Max).Scale(0.5)
}

/** @brief Returns the radius of the sphere enclosing the extents. */
func (e Extents3D) Radius() float32 {
	return e.Max.Sub(e.Min).Length() * 0.5
}
