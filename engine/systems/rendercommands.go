package systems

import (
	"fmt"
	"strings"
	"sync"

	"github.com/velum-engine/velum/engine/containers"
	"github.com/velum-engine/velum/engine/core"
	"github.com/velum-engine/velum/engine/renderer"
	"github.com/velum-engine/velum/engine/renderer/components"
	"github.com/velum-engine/velum/engine/renderer/indirect"
	"github.com/velum-engine/velum/engine/renderer/metadata"
)

/** @brief Orders two commands within a sorted pass bucket. */
type CommandComparator func(a, b metadata.RenderCommand) bool

// CompareToLess adapts the command model's -1/+1 comparator into a less
// function. Equal-keyed commands compare "not less" both ways, so the
// sorted bucket keeps them in arrival order instead of dropping them.
func CompareToLess(a, b metadata.RenderCommand) bool {
	return a.CompareTo(b) < 0
}

// commandBucket holds one pass's commands on one side of the double buffer.
// A bucket is either sorted (comparator-backed) or keeps plain arrival order.
type commandBucket struct {
	sorted   *containers.SortedList[metadata.RenderCommand]
	unsorted []metadata.RenderCommand
}

func newCommandBucket(less CommandComparator) *commandBucket {
	b := &commandBucket{}
	if less != nil {
		b.sorted = containers.NewSortedList[metadata.RenderCommand](less)
	}
	return b
}

func (b *commandBucket) add(cmd metadata.RenderCommand) {
	if b.sorted != nil {
		b.sorted.Add(cmd)
		return
	}
	b.unsorted = append(b.unsorted, cmd)
}

func (b *commandBucket) commands() []metadata.RenderCommand {
	if b.sorted != nil {
		return b.sorted.Values()
	}
	return b.unsorted
}

func (b *commandBucket) count() int {
	if b.sorted != nil {
		return b.sorted.Len()
	}
	return len(b.unsorted)
}

func (b *commandBucket) clear() {
	if b.sorted != nil {
		b.sorted.Clear()
		return
	}
	b.unsorted = b.unsorted[:0]
}

/** @brief One render pass to register: its index and an optional sort order. */
type PassRegistration struct {
	Index uint32
	/** @brief When nil, the pass collects commands in arrival order. */
	Sorter CommandComparator
}

/** @brief The configuration for the render command system. */
type RenderCommandSystemConfig struct {
	/** @brief The occlusion gate draws are routed through. Defaults to the null gate. */
	Gate metadata.OcclusionGate
	/** @brief Scoped timing hook. Defaults to a no-op. */
	Timer core.ScopedTimer
	/** @brief Builds the per-pass GPU batch at registration time. May be nil. */
	BatchFactory func(passIndex uint32) metadata.GPUCommandBatch
}

/**
 * @brief Orchestrates per-pass command sets: double-buffered accumulation,
 * sorted collection, CPU occlusion gating and GPU-pass delegation.
 *
 * Two pass maps exist at all times: updating (being filled this frame) and
 * rendering (the snapshot being drawn). A single mutex serializes map
 * mutation; render iteration walks the rendering snapshot lock-free since
 * producers never touch it between swaps.
 */
type RenderCommandSystem struct {
	mutex     sync.Mutex
	updating  map[uint32]*commandBucket
	rendering map[uint32]*commandBucket
	gpuPasses map[uint32]metadata.GPUCommandBatch
	passMeta  map[uint32]*metadata.RenderPassMetadata

	addedCount   uint32
	droppedCount uint32

	gate         metadata.OcclusionGate
	timer        core.ScopedTimer
	batchFactory func(passIndex uint32) metadata.GPUCommandBatch
}

func NewRenderCommandSystem(config RenderCommandSystemConfig) (*RenderCommandSystem, error) {
	// The GPU layout contract is validated exactly once, before any buffer
	// could be built against a mismatched layout.
	if err := indirect.ValidateRuntimeLayout(); err != nil {
		core.LogError("render command system refusing to start: %s", err.Error())
		return nil, err
	}
	gate := config.Gate
	if gate == nil {
		gate = metadata.NullOcclusionGate{}
	}
	timer := config.Timer
	if timer == nil {
		timer = core.NoopTimer()
	}
	return &RenderCommandSystem{
		updating:     make(map[uint32]*commandBucket),
		rendering:    make(map[uint32]*commandBucket),
		gpuPasses:    make(map[uint32]metadata.GPUCommandBatch),
		passMeta:     make(map[uint32]*metadata.RenderPassMetadata),
		gate:         gate,
		timer:        timer,
		batchFactory: config.BatchFactory,
	}, nil
}

/**
 * @brief Rebuilds all four pass maps from the given registrations. Passes
 * without metadata get a synthesized default. Duplicate metadata entries
 * for the same index are resolved first-wins with a logged warning; a
 * reload or restore must never crash here.
 */
func (rcs *RenderCommandSystem) SetRenderPasses(passes []PassRegistration, meta []*metadata.RenderPassMetadata) {
	rcs.mutex.Lock()
	defer rcs.mutex.Unlock()

	rcs.updating = make(map[uint32]*commandBucket, len(passes))
	rcs.rendering = make(map[uint32]*commandBucket, len(passes))
	rcs.gpuPasses = make(map[uint32]metadata.GPUCommandBatch, len(passes))
	rcs.passMeta = make(map[uint32]*metadata.RenderPassMetadata, len(passes))

	for _, reg := range passes {
		rcs.updating[reg.Index] = newCommandBucket(reg.Sorter)
		rcs.rendering[reg.Index] = newCommandBucket(reg.Sorter)
		if rcs.batchFactory != nil {
			rcs.gpuPasses[reg.Index] = rcs.batchFactory(reg.Index)
		} else {
			rcs.gpuPasses[reg.Index] = nil
		}
	}

	for _, m := range meta {
		if existing, ok := rcs.passMeta[m.Index]; ok {
			core.LogWarnLimited(
				fmt.Sprintf("pass_meta_dup_%d", m.Index),
				"duplicate pass metadata for index %d ('%s'); keeping first registration '%s'",
				m.Index, m.Name, existing.Name,
			)
			continue
		}
		rcs.passMeta[m.Index] = m
	}

	// Registered passes the caller supplied no metadata for.
	for _, reg := range passes {
		if _, ok := rcs.passMeta[reg.Index]; !ok {
			rcs.passMeta[reg.Index] = metadata.SynthesizePassMetadata(reg.Index)
		}
	}
}

/**
 * @brief Routes a command into the updating bucket for its declared pass.
 * Commands addressed to unregistered passes are dropped: a caller error,
 * not a fatal one. The drop is counted and warned at a limited rate.
 */
func (rcs *RenderCommandSystem) AddCPU(cmd metadata.RenderCommand) {
	rcs.mutex.Lock()
	defer rcs.mutex.Unlock()

	bucket, ok := rcs.updating[cmd.PassIndex()]
	if !ok {
		rcs.droppedCount++
		core.LogWarnLimited(
			fmt.Sprintf("add_cpu_unregistered_%d", cmd.PassIndex()),
			"dropping render command addressed to unregistered pass %d", cmd.PassIndex(),
		)
		return
	}
	bucket.add(cmd)
	rcs.addedCount++
}

/** @brief The number of commands added since the last buffer swap. */
func (rcs *RenderCommandSystem) AddedCommandCount() uint32 {
	rcs.mutex.Lock()
	defer rcs.mutex.Unlock()
	return rcs.addedCount
}

/** @brief Total commands dropped for targeting unregistered passes. */
func (rcs *RenderCommandSystem) DroppedCommandCount() uint32 {
	rcs.mutex.Lock()
	defer rcs.mutex.Unlock()
	return rcs.droppedCount
}

/** @brief The number of commands in a pass's rendering snapshot. */
func (rcs *RenderCommandSystem) RenderingCommandCount(passIndex uint32) int {
	rcs.mutex.Lock()
	defer rcs.mutex.Unlock()
	if bucket, ok := rcs.rendering[passIndex]; ok {
		return bucket.count()
	}
	return 0
}

func (rcs *RenderCommandSystem) renderingState(passIndex uint32) (*commandBucket, *metadata.RenderPassMetadata) {
	rcs.mutex.Lock()
	defer rcs.mutex.Unlock()
	return rcs.rendering[passIndex], rcs.passMeta[passIndex]
}

/**
 * @brief Draws a pass's rendering snapshot on the CPU path.
 *
 * With skipGpuCommands set, mesh commands are deferred to GPU indirect
 * dispatch unless their material opts out of indirect rendering. When
 * async CPU occlusion is active (non-shadow pass, camera present), mesh
 * draws are gated per command through the occlusion gate, with the query
 * end guaranteed even if the draw fails.
 */
func (rcs *RenderCommandSystem) RenderCPU(passIndex uint32, skipGpuCommands bool, camera *components.Camera) {
	end := rcs.timer.Begin("render_cpu")
	defer end()

	bucket, meta := rcs.renderingState(passIndex)
	if bucket == nil {
		core.LogWarnLimited(
			fmt.Sprintf("render_cpu_unregistered_%d", passIndex),
			"RenderCPU called for unregistered pass %d", passIndex,
		)
		return
	}
	cmds := bucket.commands()

	occlusionActive := camera != nil &&
		meta != nil && !meta.ShadowPass &&
		rcs.gate.Mode() == metadata.OCCLUSION_MODE_ASYNC_CPU_QUERY
	if occlusionActive {
		rcs.gate.BeginPass(passIndex, camera, len(cmds))
	}

	for i, cmd := range cmds {
		if !cmd.IsEnabled() {
			continue
		}
		payload := meshPayload(cmd)

		if payload != nil && skipGpuCommands {
			// Deferred to GPU indirect dispatch, unless the material
			// explicitly opts out of the indirect path.
			if payload.Material == nil || !payload.Material.ExcludeFromIndirect {
				continue
			}
		}

		if payload != nil && occlusionActive {
			// The loop position is the query slot. GPU command indices are
			// the invalid sentinel in pure-CPU mode and would alias every
			// command to one slot.
			if !rcs.gate.ShouldRender(passIndex, i) {
				continue
			}
			if err := rcs.renderWithQuery(passIndex, i, cmd, camera); err != nil {
				core.LogError("pass %d command %d failed to render: %s", passIndex, i, err.Error())
			}
			continue
		}

		if err := cmd.Render(camera); err != nil {
			core.LogError("pass %d command %d failed to render: %s", passIndex, i, err.Error())
		}
	}
}

// renderWithQuery brackets a draw in a begin/end occlusion query pair. The
// end call must run even if the draw fails or panics, so a query is never
// left open.
func (rcs *RenderCommandSystem) renderWithQuery(passIndex uint32, index int, cmd metadata.RenderCommand, camera *components.Camera) error {
	rcs.gate.BeginQuery(passIndex, index)
	defer rcs.gate.EndQuery(passIndex, index)
	return cmd.Render(camera)
}

/**
 * @brief Draws only the mesh-bearing commands of a pass, unconditionally:
 * no occlusion gating, no skip policy. Used for mesh-only passes such as
 * shadow depth.
 */
func (rcs *RenderCommandSystem) RenderCPUMeshOnly(passIndex uint32) {
	end := rcs.timer.Begin("render_cpu_mesh_only")
	defer end()

	bucket, _ := rcs.renderingState(passIndex)
	if bucket == nil {
		return
	}
	camera := renderer.CurrentCamera()
	for i, cmd := range bucket.commands() {
		if !cmd.IsEnabled() || meshPayload(cmd) == nil {
			continue
		}
		if err := cmd.Render(camera); err != nil {
			core.LogError("pass %d mesh command %d failed to render: %s", passIndex, i, err.Error())
		}
	}
}

/**
 * @brief Delegates a pass to its GPU batch. Resolves the current camera
 * and scene from global render state; if either is absent this is a no-op.
 * Visible draw/instance counts are recorded back onto 3D visual scenes.
 */
func (rcs *RenderCommandSystem) RenderGPU(passIndex uint32) error {
	end := rcs.timer.Begin("render_gpu")
	defer end()

	camera := renderer.CurrentCamera()
	scene := renderer.ActiveScene()
	if camera == nil || scene == nil {
		return nil
	}

	rcs.mutex.Lock()
	batch, registered := rcs.gpuPasses[passIndex]
	rcs.mutex.Unlock()
	if !registered || batch == nil {
		core.LogWarnLimited(
			fmt.Sprintf("render_gpu_no_batch_%d", passIndex),
			"RenderGPU called for pass %d without a GPU batch", passIndex,
		)
		return nil
	}

	scene3D, is3D := scene.(*metadata.Scene3D)
	var commands []indirect.GPURenderCommand
	if is3D {
		commands = scene3D.Commands
	}

	visibleDraws, visibleInstances, err := batch.RenderScene(commands, camera)
	if err != nil {
		return err
	}
	if is3D {
		scene3D.VisibleDrawCount = visibleDraws
		scene3D.VisibleInstanceCount = visibleInstances
		core.StatsRecordDispatch(visibleDraws, visibleInstances)
	}
	return nil
}

/**
 * @brief Exchanges the updating and rendering map references, tells every
 * command now on the rendering side to flip its internal double-buffered
 * state, clears the new updating buckets and resets the added counter.
 * A reference swap, never a copy: the per-frame cost is O(buckets), not
 * O(commands).
 */
func (rcs *RenderCommandSystem) SwapBuffers() {
	rcs.mutex.Lock()
	defer rcs.mutex.Unlock()

	rcs.updating, rcs.rendering = rcs.rendering, rcs.updating

	for _, bucket := range rcs.rendering {
		for _, cmd := range bucket.commands() {
			cmd.SwapBuffers()
		}
	}
	for _, bucket := range rcs.updating {
		bucket.clear()
	}

	core.StatsRecordFrame(rcs.addedCount, rcs.droppedCount)
	rcs.addedCount = 0
}

/**
 * @brief Cross-checks registered pass metadata: every entry must have a
 * corresponding GPU pass, and declared colour/depth attachment names must
 * carry the namespace prefix or reference the canonical output target.
 * Violations are logged, never thrown; returns false if any were found.
 */
func (rcs *RenderCommandSystem) ValidatePassMetadata() bool {
	rcs.mutex.Lock()
	defer rcs.mutex.Unlock()

	valid := true
	for index, meta := range rcs.passMeta {
		if _, ok := rcs.gpuPasses[index]; !ok {
			core.LogWarn("pass metadata '%s' (index %d) has no corresponding GPU pass", meta.Name, index)
			valid = false
		}
		for _, usage := range meta.Resources {
			if usage.ResourceUsageType != metadata.RESOURCE_USAGE_COLOUR_ATTACHMENT &&
				usage.ResourceUsageType != metadata.RESOURCE_USAGE_DEPTH_ATTACHMENT {
				continue
			}
			if usage.Name == metadata.CanonicalOutputTarget {
				continue
			}
			if !strings.HasPrefix(usage.Name, metadata.AttachmentNamespacePrefix) {
				core.LogWarn("pass '%s' attachment '%s' does not follow the '%s' naming convention",
					meta.Name, usage.Name, metadata.AttachmentNamespacePrefix)
				valid = false
			}
		}
	}
	return valid
}

// meshPayload resolves the mesh capability once per command. Non-mesh
// commands and mesh commands without geometry both come back nil.
func meshPayload(cmd metadata.RenderCommand) *metadata.MeshPayload {
	source, ok := cmd.(metadata.MeshSource)
	if !ok {
		return nil
	}
	return source.MeshPayload()
}
