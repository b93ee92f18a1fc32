package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestDumpCommand(t *testing.T) {
	path := writeSampleFile(t)

	tests := []struct {
		name           string
		offsets        bool
		depth          int
		json           bool
		wantContain    []string
		wantNotContain []string
	}{
		{
			name:        "full tree",
			wantContain: []string{"0x00000000 len=30 [2 children]", "  0x0000001F len=2", "  0x00000002 len=12", "0x00000100 len=4"},
		},
		{
			name:        "with offsets",
			offsets:     true,
			wantContain: []string{"0x00000000 len=30 [2 children] @0x0", "0x0000001F len=2 @0x8", "0x00000100 len=4 @0x26"},
		},
		{
			name:           "depth limited",
			depth:          1,
			wantContain:    []string{"0x00000000", "0x00000100"},
			wantNotContain: []string{"0x0000001F"},
		},
		{
			name:        "json",
			json:        true,
			wantContain: []string{`"has_sub_chunks": true`, `"id": 31`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			dumpOffsets = tt.offsets
			dumpDepth = tt.depth
			jsonOut = tt.json

			output, err := captureOutput(t, func() error {
				return runDump(context.Background(), []string{path})
			})
			if err != nil {
				t.Fatalf("runDump() error = %v", err)
			}
			if tt.json {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
			assertNotContains(t, output, tt.wantNotContain)
		})
	}
}

func TestDumpCommandErrors(t *testing.T) {
	resetFlags()
	if err := runDump(context.Background(), []string{filepath.Join(t.TempDir(), "missing.w3d")}); err == nil {
		t.Fatalf("expected error for missing file")
	}

	path := writeSampleFile(t)
	dumpMaxNodes = 1
	if _, err := captureOutput(t, func() error {
		return runDump(context.Background(), []string{path})
	}); err == nil {
		t.Fatalf("expected node limit error")
	}
}

func TestInfoCommand(t *testing.T) {
	path := writeSampleFile(t)

	resetFlags()
	output, err := captureOutput(t, func() error { return runInfo(context.Background(), []string{path}) })
	if err != nil {
		t.Fatalf("runInfo() error = %v", err)
	}
	assertContains(t, output, []string{
		"Top-level chunks: 2",
		"Chunks: 4",
		"Containers: 1",
		"Max depth: 2",
		"Payload bytes: 18",
		"0x0000001F: 1",
	})

	resetFlags()
	jsonOut = true
	output, err = captureOutput(t, func() error { return runInfo(context.Background(), []string{path}) })
	if err != nil {
		t.Fatalf("runInfo() json error = %v", err)
	}
	assertJSON(t, output)
	assertContains(t, output, []string{`"chunks": 4`})
}

func TestVerifyCommand(t *testing.T) {
	path := writeSampleFile(t)

	resetFlags()
	output, err := captureOutput(t, func() error { return runVerify(context.Background(), []string{path}) })
	if err != nil {
		t.Fatalf("runVerify() error = %v", err)
	}
	assertContains(t, output, []string{"Chunks: 4", "✓ Structure valid"})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	data[8+4] = 0x7F // header child now overruns the mesh
	bad := filepath.Join(t.TempDir(), "bad.w3d")
	if err := os.WriteFile(bad, data, 0o644); err != nil {
		t.Fatal(err)
	}

	resetFlags()
	output, err = captureOutput(t, func() error { return runVerify(context.Background(), []string{bad}) })
	if err == nil {
		t.Fatalf("expected verification failure")
	}
	assertContains(t, output, []string{"✗ overrun at 0x8"})
	assertNotContains(t, output, []string{"Structure valid"})

	resetFlags()
	jsonOut = true
	output, _ = captureOutput(t, func() error { return runVerify(context.Background(), []string{bad}) })
	assertJSON(t, output)
}
