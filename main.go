/*
Headless demo of the indirect render command pipeline: loads the pass set
from the asset config, pumps a few frames of commands through the double
buffer and dispatches the GPU passes.
*/
package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/velum-engine/velum/engine/core"
	"github.com/velum-engine/velum/engine/math"
	"github.com/velum-engine/velum/engine/renderer"
	"github.com/velum-engine/velum/engine/renderer/components"
	"github.com/velum-engine/velum/engine/renderer/indirect"
	"github.com/velum-engine/velum/engine/renderer/metadata"
	"github.com/velum-engine/velum/engine/renderer/vulkan"
	"github.com/velum-engine/velum/engine/systems"
)

const (
	passOpaque uint32 = 0
	passShadow uint32 = 1
	passUI     uint32 = 2
)

func registrationsFor(meta []*metadata.RenderPassMetadata) []systems.PassRegistration {
	regs := make([]systems.PassRegistration, 0, len(meta))
	for _, m := range meta {
		reg := systems.PassRegistration{Index: m.Index}
		if m.Sorted {
			reg.Sorter = systems.CompareToLess
		}
		regs = append(regs, reg)
	}
	return regs
}

func main() {
	if err := core.StatsInitialize(); err != nil {
		panic(err)
	}

	passes, err := renderer.LoadPassConfig("assets/passes.toml")
	if err != nil {
		core.LogFatal("failed to load pass config: %s", err.Error())
	}

	viewMask := indirect.ViewMaskFromViewCount(2) // stereo pair
	lookup := func(meshID, submeshID uint32) (uint32, uint32, int32, bool) {
		// A real mesh system resolves index-buffer slices here.
		return 36, 0, 0, true
	}

	system, err := systems.NewRenderCommandSystem(systems.RenderCommandSystemConfig{
		BatchFactory: func(passIndex uint32) metadata.GPUCommandBatch {
			return vulkan.NewVulkanCommandBatch(passIndex, viewMask, lookup)
		},
	})
	if err != nil {
		core.LogFatal(err.Error())
	}
	system.SetRenderPasses(registrationsFor(passes), passes)
	if !system.ValidatePassMetadata() {
		core.LogWarn("pass metadata validation reported problems, continuing")
	}

	watcher, err := renderer.WatchPassConfig("assets/passes.toml", func(fresh []*metadata.RenderPassMetadata) {
		system.SetRenderPasses(registrationsFor(fresh), fresh)
	})
	if err != nil {
		core.LogWarn("pass config watching unavailable: %s", err.Error())
	} else {
		defer watcher.Close()
	}

	camera := components.NewCamera()
	camera.SetPosition(math.NewVec3(0, 1.8, 5))

	scene := &metadata.Scene3D{SceneName: "demo"}
	for i := uint32(0); i < 8; i++ {
		cmd := indirect.GPURenderCommand{
			WorldMatrix:     math.NewMat4Identity(),
			PrevWorldMatrix: math.NewMat4Identity(),
			MeshID:          i,
			MaterialID:      i % 3,
			InstanceCount:   1 + i%4,
			RenderPass:      passOpaque,
			ShaderID:        1,
			LayerMask:       0x1,
			Flags:           indirect.COMMAND_FLAG_CASTS_SHADOW | indirect.COMMAND_FLAG_FRUSTUM_CULLED,
		}
		extents := math.Extents3D{
			Min: math.NewVec3(float32(i)*2-1, -1, -1),
			Max: math.NewVec3(float32(i)*2+1, 1, 1),
		}
		cmd.SetBoundingSphere(extents.Center(), extents.Radius())
		scene.Commands = append(scene.Commands, cmd)
	}
	renderer.SetCurrentCamera(camera)
	renderer.SetActiveScene(scene)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	mesh := &metadata.Mesh{Name: "cube"}
	mesh.ID = core.IdentifierAcquireNewID(mesh)
	material := &metadata.Material{Name: metadata.DefaultMaterialName, ShaderID: 1}
	material.ID = core.IdentifierAcquireNewID(material)

	clock := core.NewClock()
	clock.Start()

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()
	for frame := 0; ; frame++ {
		select {
		case <-sigCh:
			core.LogInfo("shutting down")
			return
		case <-ticker.C:
		}

		// Produce this frame's commands into the updating buffer.
		for i := 0; i < 8; i++ {
			cmd := metadata.NewRenderCommand3D(passOpaque, metadata.NewMeshPayload(mesh, material, 1), nil)
			cmd.UpdateRenderDistance(math.NewVec3(float32(i), 0, float32(frame%10)), camera)
			system.AddCPU(cmd)
		}

		system.SwapBuffers()
		system.RenderCPU(passOpaque, true, camera)
		system.RenderCPUMeshOnly(passShadow)
		system.RenderCPU(passUI, false, nil)
		if err := system.RenderGPU(passOpaque); err != nil {
			core.LogError("gpu dispatch failed: %s", err.Error())
		}
		camera.EndFrame()

		if frame%60 == 0 {
			clock.Update()
			stats := core.StatsSnapshot()
			core.LogDebug("frame %d (%.1fs): %d visible draws, %d instances",
				frame, clock.Elapsed()/1e9, stats.VisibleDraws, stats.VisibleInstances)
		}
	}
}
