package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/firesim/internal/storage"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("%v failed: %v\n%s", args, err, buf.String())
	}
	return buf.String()
}

func TestRunListShow(t *testing.T) {
	dir := t.TempDir()

	out := execute(t, "run", "--data", dir, "--preset", "still", "--size", "4,4,4", "--frames", "3")
	if !strings.Contains(out, "run id: still_") {
		t.Fatalf("expected run id in output, got:\n%s", out)
	}

	runs, err := storage.New(dir).List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 stored run, got %d", len(runs))
	}
	if runs[0].Frames != 3 || runs[0].Size != [3]int{4, 4, 4} {
		t.Errorf("unexpected metadata %+v", runs[0])
	}

	out = execute(t, "list", "--data", dir)
	if !strings.Contains(out, runs[0].ID) {
		t.Errorf("list output missing %s:\n%s", runs[0].ID, out)
	}

	out = execute(t, "show", "--data", dir, runs[0].ID)
	if !strings.Contains(out, `"scene": "still"`) {
		t.Errorf("show output missing scene:\n%s", out)
	}

	path := filepath.Join(dir, "export.json")
	execute(t, "export-json", "--data", dir, "--out", path, runs[0].ID)
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected export file: %v", err)
	}
}

func TestRunNoSave(t *testing.T) {
	dir := t.TempDir()
	execute(t, "run", "--data", dir, "--preset", "still", "--size", "4,4,4", "--frames", "2", "--save=false")

	runs, _ := storage.New(dir).List()
	if len(runs) != 0 {
		t.Errorf("expected no stored runs, got %d", len(runs))
	}
}

func TestListEmpty(t *testing.T) {
	out := execute(t, "list", "--data", t.TempDir())
	if !strings.Contains(out, "no runs found") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestPresetsAndScenes(t *testing.T) {
	out := execute(t, "presets")
	for _, name := range []string{"campfire", "smoke", "still", "torch"} {
		if !strings.Contains(out, name) {
			t.Errorf("presets output missing %s", name)
		}
	}

	out = execute(t, "scenes")
	for _, name := range []string{"ambient", "fuel-pool", "hot-pocket", "still"} {
		if !strings.Contains(out, name) {
			t.Errorf("scenes output missing %s", name)
		}
	}
}

func TestMonteCarloCommand(t *testing.T) {
	out := execute(t, "montecarlo", "--preset", "still", "--size", "4,4,4", "--frames", "2",
		"--param", "vorticity_strength", "--trials", "3", "--seed", "7", "--workers", "2")
	if !strings.Contains(out, "stable: 3  unstable: 0") {
		t.Errorf("expected all trials stable, got:\n%s", out)
	}
	if !strings.Contains(out, "TRIAL") || !strings.Contains(out, "total_density") {
		t.Errorf("missing table header:\n%s", out)
	}
}

func TestMonteCarloRejectsUnknownParam(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"montecarlo", "--preset", "still", "--size", "4,4,4", "--frames", "1", "--param", "gravity", "--trials", "1"})
	if err := cmd.Execute(); err == nil {
		t.Error("expected error for unknown parameter")
	}
}

func TestResolveConfig(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		check   func(t *testing.T, c *cobra.Command)
		wantErr bool
	}{
		{
			name: "defaults",
			check: func(t *testing.T, c *cobra.Command) {
				cfg, err := resolveConfig(c)
				if err != nil {
					t.Fatal(err)
				}
				if cfg.Size != [3]int{32, 32, 32} || cfg.Frames != 200 {
					t.Errorf("unexpected defaults %+v", cfg)
				}
			},
		},
		{
			name: "preset with overrides",
			args: []string{"--preset", "torch", "--frames", "7", "--dt", "0.05", "--backend", "serial"},
			check: func(t *testing.T, c *cobra.Command) {
				cfg, err := resolveConfig(c)
				if err != nil {
					t.Fatal(err)
				}
				if cfg.Name != "torch" || cfg.Frames != 7 || cfg.Params.Dt != 0.05 || cfg.Backend != "serial" {
					t.Errorf("overrides not applied: %+v", cfg)
				}
			},
		},
		{
			name:    "unknown preset",
			args:    []string{"--preset", "bonfire"},
			wantErr: true,
		},
		{
			name:    "bad size",
			args:    []string{"--size", "8,8"},
			wantErr: true,
		},
		{
			name:    "invalid frames",
			args:    []string{"--frames", "0"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &cobra.Command{Use: "test"}
			addConfigFlags(c)
			if err := c.ParseFlags(tt.args); err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if tt.wantErr {
				if _, err := resolveConfig(c); err == nil {
					t.Error("expected error")
				}
				return
			}
			tt.check(t, c)
		})
	}
}
