package renderer

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
	"github.com/velum-engine/velum/engine/core"
	"github.com/velum-engine/velum/engine/renderer/metadata"
)

/**
 * @brief On-disk render pass configuration, authored by the render graph
 * tooling as TOML. Used as a serialization target.
 */
type PassConfigFile struct {
	Passes []PassConfig `toml:"passes"`
}

type PassConfig struct {
	Index uint32 `toml:"index"`
	Name  string `toml:"name"`
	/** @brief One of "graphics", "compute", "transfer". Defaults to graphics. */
	Stage      string `toml:"stage"`
	ShadowPass bool   `toml:"shadow_pass"`
	/** @brief When set, the pass collects commands into a distance-sorted bucket. */
	Sorted    bool                 `toml:"sorted"`
	Resources []PassResourceConfig `toml:"resources"`
}

type PassResourceConfig struct {
	/** @brief One of "colour", "depth", "texture", "buffer". */
	Type string `toml:"type"`
	Name string `toml:"name"`
}

func stageFromString(stage string) metadata.PipelineStage {
	switch stage {
	case "compute":
		return metadata.PIPELINE_STAGE_COMPUTE
	case "transfer":
		return metadata.PIPELINE_STAGE_TRANSFER
	case "graphics", "":
		return metadata.PIPELINE_STAGE_GRAPHICS
	default:
		core.LogWarnLimited("passconfig_stage_"+stage, "unknown pipeline stage '%s', assuming graphics", stage)
		return metadata.PIPELINE_STAGE_GRAPHICS
	}
}

func usageFromString(usage string) (metadata.ResourceUsageType, error) {
	switch usage {
	case "colour", "color":
		return metadata.RESOURCE_USAGE_COLOUR_ATTACHMENT, nil
	case "depth":
		return metadata.RESOURCE_USAGE_DEPTH_ATTACHMENT, nil
	case "texture":
		return metadata.RESOURCE_USAGE_SAMPLED_TEXTURE, nil
	case "buffer":
		return metadata.RESOURCE_USAGE_STORAGE_BUFFER, nil
	default:
		return 0, fmt.Errorf("unknown resource usage type '%s'", usage)
	}
}

// LoadPassConfig parses a TOML pass configuration file into pass metadata
// descriptors, in file order. Duplicate indices survive here; the command
// system resolves them first-wins at registration.
func LoadPassConfig(path string) ([]*metadata.RenderPassMetadata, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file PassConfigFile
	if err := toml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("pass config '%s' is not valid TOML: %w", path, err)
	}

	out := make([]*metadata.RenderPassMetadata, 0, len(file.Passes))
	for _, pc := range file.Passes {
		meta := &metadata.RenderPassMetadata{
			Index:      pc.Index,
			Name:       pc.Name,
			Stage:      stageFromString(pc.Stage),
			ShadowPass: pc.ShadowPass,
			Sorted:     pc.Sorted,
		}
		if meta.Name == "" {
			meta.Name = metadata.SynthesizePassMetadata(pc.Index).Name
		}
		for _, rc := range pc.Resources {
			usage, err := usageFromString(rc.Type)
			if err != nil {
				return nil, fmt.Errorf("pass '%s': %w", meta.Name, err)
			}
			meta.Resources = append(meta.Resources, &metadata.ResourceUsage{
				ResourceUsageType: usage,
				Name:              rc.Name,
			})
		}
		out = append(out, meta)
	}
	return out, nil
}

// PassConfigWatcher reloads the pass configuration whenever the file
// changes on disk and hands the fresh metadata to the reload callback.
type PassConfigWatcher struct {
	path     string
	fsnotify *fsnotify.Watcher
	done     chan struct{}
	onReload func([]*metadata.RenderPassMetadata)
}

func WatchPassConfig(path string, onReload func([]*metadata.RenderPassMetadata)) (*PassConfigWatcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatch.Add(path); err != nil {
		fsWatch.Close()
		return nil, err
	}
	w := &PassConfigWatcher{
		path:     path,
		fsnotify: fsWatch,
		done:     make(chan struct{}),
		onReload: onReload,
	}
	go w.start()
	return w, nil
}

func (w *PassConfigWatcher) start() {
	for {
		select {
		case e := <-w.fsnotify.Events:
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				passes, err := LoadPassConfig(w.path)
				if err != nil {
					core.LogError("pass config reload failed: %s", err.Error())
					continue
				}
				core.LogInfo("pass config '%s' reloaded (%d passes)", w.path, len(passes))
				w.onReload(passes)
			}

		case e := <-w.fsnotify.Errors:
			core.LogError(e.Error())

		case <-w.done:
			w.fsnotify.Close()
			return
		}
	}
}

func (w *PassConfigWatcher) Close() {
	close(w.done)
}
