package indirect

import (
	"fmt"
	"unsafe"

	"github.com/velum-engine/velum/engine/core"
	"github.com/velum-engine/velum/engine/math"
)

const (
	/** @brief The absolute maximum number of simultaneous views. */
	MAX_VIEWS = 64
	/**
	 * @brief Hard ceiling on the shared per-view visible-index buffer, in
	 * elements. Bounds worst-case memory against pathological
	 * (commands x views) products.
	 */
	MAX_PER_VIEW_VISIBLE = 16 * 1024 * 1024
)

const (
	/** @brief The contractual size of a view mask, in bytes. */
	ViewMaskSize = 8
	/** @brief The contractual size of a view descriptor, in bytes. */
	ViewDescriptorSize = 80
	/** @brief The contractual size of per-view constants, in bytes. */
	ViewConstantsSize = 288
)

/** @brief Per-view attribute bits for stereo and foveated rendering. */
type ViewFlag uint32

const (
	VIEW_FLAG_STEREO_LEFT       ViewFlag = 1 << 0
	VIEW_FLAG_STEREO_RIGHT      ViewFlag = 1 << 1
	VIEW_FLAG_FULL_RESOLUTION   ViewFlag = 1 << 2
	VIEW_FLAG_FOVEATED          ViewFlag = 1 << 3
	VIEW_FLAG_MIRROR            ViewFlag = 1 << 4
	VIEW_FLAG_SHARES_VISIBILITY ViewFlag = 1 << 5
)

/**
 * @brief A 64-bit per-view visibility mask, stored as two 32-bit halves so
 * shader code without 64-bit integer support can consume it.
 */
type ViewMask struct {
	Low  uint32
	High uint32
}

/**
 * @brief Builds a mask with the low n view bits set, crossing the halfword
 * boundary at bit 32. n of 0 yields an empty mask; n of 64 or more yields
 * all bits set.
 */
func ViewMaskFromViewCount(n uint32) ViewMask {
	switch {
	case n == 0:
		return ViewMask{}
	case n >= MAX_VIEWS:
		return ViewMask{Low: 0xFFFFFFFF, High: 0xFFFFFFFF}
	case n >= 32:
		return ViewMask{Low: 0xFFFFFFFF, High: (uint32(1) << (n - 32)) - 1}
	default:
		return ViewMask{Low: (uint32(1) << n) - 1}
	}
}

/** @brief Reports whether the bit for the given view index is set. */
func (m ViewMask) Test(view uint32) bool {
	if view >= MAX_VIEWS {
		return false
	}
	if view >= 32 {
		return m.High&(uint32(1)<<(view-32)) != 0
	}
	return m.Low&(uint32(1)<<view) != 0
}

/** @brief Sets the bit for the given view index. Out-of-range indices are ignored. */
func (m *ViewMask) Set(view uint32) {
	if view >= MAX_VIEWS {
		return
	}
	if view >= 32 {
		m.High |= uint32(1) << (view - 32)
		return
	}
	m.Low |= uint32(1) << view
}

/**
 * @brief Per-view descriptor consumed by the multi-view culling shader.
 * Field order and size are part of the GPU layout contract.
 */
type ViewDescriptor struct {
	ViewID uint32
	/** @brief Parent view for derived/mirrored views; InvalidCommandIndex when none. */
	ParentViewID uint32
	Flags        ViewFlag
	OutputLayer  uint32
	/** @brief 64-bit render-pass participation mask, split like ViewMask. */
	PassMaskLow  uint32
	PassMaskHigh uint32
	/** @brief Slice of the shared per-view visible-index buffer owned by this view. */
	VisibleOffset   uint32
	VisibleCapacity uint32
	/** @brief Viewport rectangle as x, y, w, h. */
	Viewport math.Vec4
	/** @brief Foveation parameters, interpreted by the foveation shader. */
	FoveationParams [2]math.Vec4
}

/**
 * @brief Exactly the per-view camera data a shader needs to transform and
 * cull against a single view.
 */
type ViewConstants struct {
	View               math.Mat4
	Projection         math.Mat4
	ViewProjection     math.Mat4
	PrevViewProjection math.Mat4
	/** @brief Camera position in xyz, near plane in w. */
	CameraPositionNear math.Vec4
	/** @brief Camera forward in xyz, far plane in w. */
	CameraForwardFar math.Vec4
}

/**
 * @brief Clamps a requested view count to the valid range. The count is
 * never zero and never exceeds MAX_VIEWS.
 */
func ClampViewCount(v uint32) uint32 {
	if v == 0 {
		return 1
	}
	return math.Clamp(v, 1, MAX_VIEWS)
}

/**
 * @brief Sizes the shared per-view visible-index buffer. The result is the
 * (commands x views) product capped at MAX_PER_VIEW_VISIBLE and floored at
 * 1 so the allocation is never empty.
 */
func ComputePerViewVisibleCapacity(commandCapacity, viewCapacity uint32) uint32 {
	product := uint64(commandCapacity) * uint64(viewCapacity)
	if product < 1 {
		return 1
	}
	return uint32(math.Min(product, uint64(MAX_PER_VIEW_VISIBLE)))
}

/**
 * @brief Validates every GPU-visible struct against the byte sizes the
 * shaders were compiled with. Called once at process start; a mismatch is a
 * fatal configuration error since proceeding would corrupt GPU memory.
 */
func ValidateRuntimeLayout() error {
	checks := []struct {
		name string
		got  uintptr
		want uintptr
	}{
		{"GPURenderCommand", unsafe.Sizeof(GPURenderCommand{}), GPURenderCommandSize},
		{"HotCommand", unsafe.Sizeof(HotCommand{}), HotCommandSize},
		{"ColdCommand", unsafe.Sizeof(ColdCommand{}), ColdCommandSize},
		{"ViewMask", unsafe.Sizeof(ViewMask{}), ViewMaskSize},
		{"ViewDescriptor", unsafe.Sizeof(ViewDescriptor{}), ViewDescriptorSize},
		{"ViewConstants", unsafe.Sizeof(ViewConstants{}), ViewConstantsSize},
	}
	for _, c := range checks {
		if c.got != c.want {
			return fmt.Errorf("%w: %s is %d bytes, shaders expect %d", core.ErrLayoutMismatch, c.name, c.got, c.want)
		}
	}
	return nil
}
