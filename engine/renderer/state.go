package renderer

import (
	"sync"

	"github.com/velum-engine/velum/engine/renderer/components"
	"github.com/velum-engine/velum/engine/renderer/metadata"
)

// Global render state: the camera and scene the GPU dispatch path resolves
// when a pass is rendered. Set explicitly by the frame loop.
type renderState struct {
	mu     sync.RWMutex
	camera *components.Camera
	scene  metadata.Scene
}

var state renderState

func SetCurrentCamera(camera *components.Camera) {
	state.mu.Lock()
	state.camera = camera
	state.mu.Unlock()
}

func CurrentCamera() *components.Camera {
	state.mu.RLock()
	defer state.mu.RUnlock()
	return state.camera
}

func SetActiveScene(scene metadata.Scene) {
	state.mu.Lock()
	state.scene = scene
	state.mu.Unlock()
}

func ActiveScene() metadata.Scene {
	state.mu.RLock()
	defer state.mu.RUnlock()
	return state.scene
}
