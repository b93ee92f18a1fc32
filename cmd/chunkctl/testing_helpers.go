package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joshuapare/chunkio/chunk"
	"github.com/joshuapare/chunkio/pkg/chunkfile"
)

// writeSampleFile writes a two-level chunk file and returns its path:
//
//	0x00000000 mesh
//	  0x0000001F header ("AB")
//	  0x00000002 vertices (12 bytes)
//	0x00000100 hierarchy (4 bytes)
func writeSampleFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.w3d")
	err := chunkfile.Save(path, func(w *chunk.Writer) error {
		mesh, err := w.Container(0x00000000)
		if err != nil {
			return err
		}
		for _, c := range []struct {
			id   uint32
			data []byte
		}{{0x1F, []byte("AB")}, {0x02, make([]byte, 12)}} {
			p, err := mesh.Payload(c.id)
			if err != nil {
				return err
			}
			if _, err := p.Write(c.data); err != nil {
				return err
			}
			if err := p.End(); err != nil {
				return err
			}
		}
		if err := mesh.End(); err != nil {
			return err
		}
		return w.WriteStringChunk(0x100, "abc")
	}, nil)
	if err != nil {
		t.Fatalf("write sample: %v", err)
	}
	return path
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return buf.String(), fnErr
}

// resetFlags restores global flags to their defaults between cases
func resetFlags() {
	verbose = false
	quiet = false
	jsonOut = false
	maxDepth = chunk.DefaultMaxDepth
	dumpMaxNodes = 0
	dumpOffsets = false
	dumpDepth = 0
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("output is not valid JSON: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, exp := range expected {
		if !strings.Contains(output, exp) {
			t.Errorf("output missing expected string %q\nOutput: %s", exp, output)
		}
	}
}

// assertNotContains checks that output does not contain any of the strings
func assertNotContains(t *testing.T, output string, unexpected []string) {
	t.Helper()
	for _, s := range unexpected {
		if strings.Contains(output, s) {
			t.Errorf("output contains unexpected string %q\nOutput: %s", s, output)
		}
	}
}
