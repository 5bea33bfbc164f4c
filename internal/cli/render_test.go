package cli

import (
	"bytes"
	"encoding/json"
	"image/gif"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/gridviz/pkg/plan"
)

// writeFixtures writes a map and plan file into a temp dir.
func writeFixtures(t *testing.T) (mapPath, planPath string) {
	t.Helper()
	dir := t.TempDir()

	mapPath = filepath.Join(dir, "map.txt")
	if err := os.WriteFile(mapPath, []byte("S..\n...\n..G\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := plan.Plan{Path: plan.Path{
		{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0},
		{Row: 2, Col: 1}, {Row: 2, Col: 2},
	}}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	planPath = filepath.Join(dir, "level.json")
	if err := os.WriteFile(planPath, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return mapPath, planPath
}

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	return root.Execute()
}

func TestRenderCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	mapPath, planPath := writeFixtures(t)
	out := filepath.Join(t.TempDir(), "out", "level")

	err := runCLI(t, "render", mapPath, planPath, "-o", out, "-f", "gif,png", "--scale", "2")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	data, err := os.ReadFile(out + ".gif")
	if err != nil {
		t.Fatalf("read gif: %v", err)
	}
	decoded, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode gif: %v", err)
	}
	if len(decoded.Image) != 6 {
		t.Errorf("frames = %d, want 6 (5 steps + anchor)", len(decoded.Image))
	}

	if _, err := os.Stat(out + ".png"); err != nil {
		t.Errorf("png not written: %v", err)
	}
}

func TestRenderCommandDefaultOutput(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	mapPath, planPath := writeFixtures(t)

	if err := runCLI(t, "render", mapPath, planPath, "-f", "ascii", "--no-cache"); err != nil {
		t.Fatalf("render: %v", err)
	}

	// Output defaults to the plan path with the format extension.
	want := filepath.Join(filepath.Dir(planPath), "level.txt")
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read trace: %v", err)
	}
	if !bytes.Contains(data, []byte("R")) {
		t.Errorf("trace missing agent marker:\n%s", data)
	}
}

func TestRenderCommandMissingMap(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, planPath := writeFixtures(t)
	if err := runCLI(t, "render", filepath.Join(t.TempDir(), "nope.txt"), planPath); err == nil {
		t.Error("expected error for missing map file")
	}
}

func TestRenderCommandInvalidFormat(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	mapPath, planPath := writeFixtures(t)
	if err := runCLI(t, "render", mapPath, planPath, "-f", "webp"); err == nil {
		t.Error("expected error for invalid format")
	}
}

func TestTreeCommand(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, planPath := writeFixtures(t)
	out := filepath.Join(t.TempDir(), "tree.dot")

	if err := runCLI(t, "tree", planPath, "-f", "dot", "-o", out); err != nil {
		t.Fatalf("tree: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("digraph G {")) {
		t.Errorf("unexpected DOT output:\n%s", data)
	}
}
