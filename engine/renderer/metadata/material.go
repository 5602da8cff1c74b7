package metadata

/** @brief The name of the default material. */
const DefaultMaterialName string = "default"

/**
 * @brief The slice of a material this core consumes. Resolution and shading
 * state live in the material system.
 */
type Material struct {
	ID   uint32
	Name string
	/** @brief The shader program this material renders with. */
	ShaderID uint32
	/**
	 * @brief When set, geometry using this material is always drawn on the
	 * CPU path, even when the pass defers mesh draws to GPU indirect
	 * dispatch.
	 */
	ExcludeFromIndirect bool
	/** @brief Synced to the renderer frame number to avoid re-applying per frame. */
	RenderFrameNumber uint32
}

/** @brief The slice of a mesh this core consumes. */
type Mesh struct {
	ID        uint32
	SubmeshID uint32
	Name      string
}
