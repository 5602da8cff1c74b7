package core

import "sync"

// RenderStats accumulates per-frame telemetry reported back by the GPU
// dispatch path: how many draws survived culling/occlusion and how many
// instances they expanded to.
type RenderStats struct {
	VisibleDraws     uint32
	VisibleInstances uint32
	CommandsAdded    uint32
	CommandsDropped  uint32
	Frames           int64
}

var onceStats sync.Once
var statsState *RenderStats = nil

func StatsInitialize() error {
	onceStats.Do(func() {
		statsState = &RenderStats{}
	})
	return nil
}

func StatsRecordDispatch(visibleDraws, visibleInstances uint32) {
	if statsState == nil {
		return
	}
	statsState.VisibleDraws = visibleDraws
	statsState.VisibleInstances = visibleInstances
}

func StatsRecordFrame(added, dropped uint32) {
	if statsState == nil {
		return
	}
	statsState.CommandsAdded = added
	statsState.CommandsDropped = dropped
	statsState.Frames++
}

func StatsSnapshot() RenderStats {
	if statsState == nil {
		return RenderStats{}
	}
	return *statsState
}
