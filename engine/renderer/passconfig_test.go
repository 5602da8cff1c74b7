package renderer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/velum-engine/velum/engine/renderer/metadata"
)

const passConfigSample = `
[[passes]]
index = 0
name = "Velum.Opaque"
stage = "graphics"
sorted = true

[[passes.resources]]
type = "colour"
name = "Velum.SceneColor"

[[passes.resources]]
type = "depth"
name = "Velum.SceneDepth"

[[passes]]
index = 1
name = "Velum.ShadowDepth"
shadow_pass = true

[[passes]]
index = 2
`

func writePassConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "passes.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPassConfig(t *testing.T) {
	passes, err := LoadPassConfig(writePassConfig(t, passConfigSample))
	if err != nil {
		t.Fatalf("LoadPassConfig: %v", err)
	}
	if len(passes) != 3 {
		t.Fatalf("loaded %d passes, want 3", len(passes))
	}

	opaque := passes[0]
	if opaque.Index != 0 || opaque.Name != "Velum.Opaque" || opaque.Stage != metadata.PIPELINE_STAGE_GRAPHICS {
		t.Errorf("opaque pass = %+v", opaque)
	}
	if !opaque.Sorted {
		t.Error("sorted flag not parsed")
	}
	if len(opaque.Resources) != 2 {
		t.Fatalf("opaque pass has %d resources, want 2", len(opaque.Resources))
	}
	if opaque.Resources[0].ResourceUsageType != metadata.RESOURCE_USAGE_COLOUR_ATTACHMENT ||
		opaque.Resources[1].ResourceUsageType != metadata.RESOURCE_USAGE_DEPTH_ATTACHMENT {
		t.Errorf("opaque resources = %+v, %+v", opaque.Resources[0], opaque.Resources[1])
	}

	if !passes[1].ShadowPass {
		t.Error("shadow pass flag not parsed")
	}

	// A pass without a name gets the synthesized default.
	if passes[2].Name != "pass_2" {
		t.Errorf("unnamed pass = %q, want synthesized name", passes[2].Name)
	}
}

func TestLoadPassConfigRejectsUnknownResourceType(t *testing.T) {
	contents := `
[[passes]]
index = 0
name = "Velum.Broken"

[[passes.resources]]
type = "framebuffer"
name = "Velum.X"
`
	if _, err := LoadPassConfig(writePassConfig(t, contents)); err == nil {
		t.Fatal("unknown resource type accepted")
	}
}

func TestLoadPassConfigRejectsInvalidTOML(t *testing.T) {
	if _, err := LoadPassConfig(writePassConfig(t, "[[passes\n")); err == nil {
		t.Fatal("invalid TOML accepted")
	}
}

func TestLoadPassConfigMissingFile(t *testing.T) {
	if _, err := LoadPassConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("missing file accepted")
	}
}
