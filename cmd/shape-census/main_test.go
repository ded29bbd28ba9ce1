package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// createShapesImage writes a white PNG with a red and a blue square.
func createShapesImage(t *testing.T) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 120, 60))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	for y := 10; y < 40; y++ {
		for x := 10; x < 40; x++ {
			img.Set(x, y, color.NRGBA{255, 0, 0, 255})
			img.Set(x+60, y, color.NRGBA{0, 0, 255, 255})
		}
	}

	path := filepath.Join(t.TempDir(), "shapes.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func TestRun_TextOutput(t *testing.T) {
	path := createShapesImage(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{path}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}

	want := "Shapes: 2\nColors: 2\nColors (RGB): [(255, 0, 0), (0, 0, 255)]\n"
	if stdout.String() != want {
		t.Errorf("stdout:\n got: %q\nwant: %q", stdout.String(), want)
	}
}

func TestRun_FlagsAfterPath(t *testing.T) {
	path := createShapesImage(t)
	var stdout, stderr bytes.Buffer

	// A tolerance above the red-blue distance merges both squares.
	code := run([]string{path, "--color-tol", "400", "--min-area=100"}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	want := "Shapes: 2\nColors: 1\nColors (RGB): [(255, 0, 0)]\n"
	if stdout.String() != want {
		t.Errorf("stdout:\n got: %q\nwant: %q", stdout.String(), want)
	}
}

func TestRun_MinAreaFiltersEverything(t *testing.T) {
	path := createShapesImage(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"-min-area", "1000", path}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	want := "Shapes: 0\nColors: 0\nColors (RGB): []\n"
	if stdout.String() != want {
		t.Errorf("stdout:\n got: %q\nwant: %q", stdout.String(), want)
	}
}

func TestRun_JSONOutput(t *testing.T) {
	path := createShapesImage(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"-format", "json", path}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}

	var got struct {
		ShapeCount int `json:"shape_count"`
		ColorCount int `json:"color_count"`
		Shapes     []struct {
			Area int `json:"area"`
		} `json:"shapes"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, stdout.String())
	}
	if got.ShapeCount != 2 || got.ColorCount != 2 || len(got.Shapes) != 2 || got.Shapes[0].Area != 900 {
		t.Errorf("unexpected JSON result: %+v", got)
	}
}

func TestRun_ConfigFile(t *testing.T) {
	path := createShapesImage(t)
	cfgPath := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(cfgPath, []byte(`{"min_area": 1000, "color_tol": 400}`), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	var stdout, stderr bytes.Buffer
	// The explicit flag beats the file; color_tol comes from the file.
	code := run([]string{"-config", cfgPath, "-min-area", "300", path}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	if !strings.HasPrefix(stdout.String(), "Shapes: 2\nColors: 1\n") {
		t.Errorf("stdout: %q", stdout.String())
	}
}

func TestRun_ImageNotFound(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"/nonexistent/shapes.png"}, &stdout, &stderr)
	if code != exitError {
		t.Errorf("exit code: got %d, want %d", code, exitError)
	}
	if stdout.Len() != 0 {
		t.Errorf("nothing should be printed to stdout, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "failed to open image /nonexistent/shapes.png") {
		t.Errorf("stderr: %q", stderr.String())
	}
}

func TestRun_UsageErrors(t *testing.T) {
	path := createShapesImage(t)

	tests := []struct {
		name string
		args []string
	}{
		{"no path", nil},
		{"two paths", []string{path, path}},
		{"unknown flag", []string{"-bogus", path}},
		{"bad number", []string{"-min-area", "lots", path}},
		{"unknown metric", []string{"-metric", "hsv", path}},
		{"unknown format", []string{"-format", "xml", path}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(tt.args, &stdout, &stderr); code != exitUsage {
				t.Errorf("exit code: got %d, want %d (stderr: %s)", code, exitUsage, stderr.String())
			}
		})
	}
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--version"}, &stdout, &stderr); code != exitOK {
		t.Fatalf("exit code %d", code)
	}
	if !strings.HasPrefix(stdout.String(), "shape-census dev") {
		t.Errorf("version output: %q", stdout.String())
	}
}

func TestRun_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-h"}, &stdout, &stderr); code != exitOK {
		t.Fatalf("exit code %d", code)
	}
	if !strings.Contains(stderr.String(), "Usage: shape-census") {
		t.Errorf("help output: %q", stderr.String())
	}
}
