package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"audiobind/internal/config"
	"audiobind/internal/media/ffmpeg"
	"audiobind/internal/media/ffprobe"
	"audiobind/internal/merge"
	"audiobind/internal/services"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	stagingDir string
	output     string
	inputs     []string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	stagingDir := filepath.Join(base, "staging")
	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf("[paths]\nstaging_dir = %q\n\n[logging]\nlevel = \"error\"\n", stagingDir)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	inputsDir := filepath.Join(base, "inputs")
	if err := os.MkdirAll(inputsDir, 0o755); err != nil {
		t.Fatalf("mkdir inputs: %v", err)
	}
	inputs := make([]string, 0, 3)
	for _, name := range []string{"01-intro.mp3", "02-journey.mp3", "03-return.mp3"} {
		path := filepath.Join(inputsDir, name)
		if err := os.WriteFile(path, []byte("audio"), 0o644); err != nil {
			t.Fatalf("write input %s: %v", name, err)
		}
		inputs = append(inputs, path)
	}

	return &cliTestEnv{
		baseDir:    base,
		configPath: configPath,
		stagingDir: stagingDir,
		output:     filepath.Join(base, "out", "book.mp3"),
		inputs:     inputs,
	}
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	full := args
	if configPath != "" {
		full = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(full)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

type stubProber struct {
	durations  map[string]time.Duration
	inspection ffprobe.Result
	probes     []string
}

func newStubProber() *stubProber {
	return &stubProber{
		durations: map[string]time.Duration{
			"01-intro.mp3":   60 * time.Second,
			"02-journey.mp3": 45500 * time.Millisecond,
			"03-return.mp3":  120250 * time.Millisecond,
		},
		inspection: ffprobe.Result{
			Streams: []ffprobe.Stream{{Index: 0, CodecType: "audio", CodecName: "mp3"}},
			Format:  ffprobe.Format{Duration: "225.750", Size: "2048", BitRate: "128000"},
		},
	}
}

func (p *stubProber) Probe(_ context.Context, path string) (time.Duration, error) {
	p.probes = append(p.probes, path)
	if duration, ok := p.durations[filepath.Base(path)]; ok {
		return duration, nil
	}
	return 0, services.Wrap(services.ErrProbe, "ffprobe", "probe", path, nil)
}

func (p *stubProber) Inspect(context.Context, string) (ffprobe.Result, error) {
	return p.inspection, nil
}

type stubEncoder struct {
	concats []string
	embeds  []ffmpeg.EmbedRequest
}

func (e *stubEncoder) Concat(_ context.Context, listPath, outputPath string) error {
	e.concats = append(e.concats, listPath)
	return os.WriteFile(outputPath, []byte("merged audio"), 0o644)
}

func (e *stubEncoder) Embed(_ context.Context, req ffmpeg.EmbedRequest) error {
	e.embeds = append(e.embeds, req)
	return os.WriteFile(req.OutputPath, []byte("tagged audio"), 0o644)
}

// injectClients swaps the orchestrator factory so CLI tests run the real
// pipeline against fake probe and encode clients.
func injectClients(t *testing.T, prober ffprobe.Client, encoder ffmpeg.Client) {
	t.Helper()
	original := newOrchestrator
	newOrchestrator = func(cfg *config.Config, logger *slog.Logger) *merge.Orchestrator {
		return merge.New(cfg,
			merge.WithProber(prober),
			merge.WithEncoder(encoder),
			merge.WithLogger(logger),
		)
	}
	t.Cleanup(func() { newOrchestrator = original })
}
