package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func testdataPath(parts ...string) string {
	base := filepath.Join("..", "..", "testdata")
	return filepath.Join(append([]string{base}, parts...)...)
}

func runCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var outBuf, errBuf strings.Builder
	cmd := newRootCommand(&outBuf, &errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestCLI_SingleScript(t *testing.T) {
	stdout, _, err := runCommand(t, testdataPath("scripts", "basics.gl"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	golden, err := os.ReadFile(testdataPath("golden", "basics.out"))
	if err != nil {
		t.Fatal(err)
	}
	want := "# " + testdataPath("scripts", "basics.gl") + "\n" + string(golden)
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestCLI_Directory(t *testing.T) {
	stdout, _, err := runCommand(t, testdataPath("scripts")+"/...")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, name := range []string{"basics.gl", "growth.gl", "remove.gl"} {
		if !strings.Contains(stdout, name) {
			t.Errorf("expected transcript header for %s in stdout", name)
		}
	}
}

func TestCLI_ListMode(t *testing.T) {
	stdout, _, err := runCommand(t, "-l", testdataPath("scripts"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// basics and remove have failing operations, growth has none
	if !strings.Contains(stdout, "basics.gl") || !strings.Contains(stdout, "remove.gl") {
		t.Errorf("expected failing scripts to be listed, got %q", stdout)
	}
	if strings.Contains(stdout, "growth.gl") {
		t.Errorf("did not expect growth.gl to be listed, got %q", stdout)
	}
	if strings.Contains(stdout, "> ") {
		t.Errorf("expected no transcripts in list mode, got %q", stdout)
	}
}

func TestCLI_VerboseMode(t *testing.T) {
	_, stderr, err := runCommand(t, "-v", testdataPath("scripts", "growth.gl"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stderr, "script finished") {
		t.Errorf("expected debug log for the script, got %q", stderr)
	}
	if !strings.Contains(stderr, "5 slots copied by growth") {
		t.Errorf("expected summary in stderr, got %q", stderr)
	}
}

func TestCLI_Write(t *testing.T) {
	dir := t.TempDir()
	src, err := os.ReadFile(testdataPath("scripts", "growth.gl"))
	if err != nil {
		t.Fatal(err)
	}
	script := filepath.Join(dir, "growth.gl")
	if err := os.WriteFile(script, src, 0644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := runCommand(t, "-w", script)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "" {
		t.Errorf("expected empty stdout with -w, got %q", stdout)
	}

	written, err := os.ReadFile(script + ".out")
	if err != nil {
		t.Fatal(err)
	}
	golden, err := os.ReadFile(testdataPath("golden", "growth.out"))
	if err != nil {
		t.Fatal(err)
	}
	if string(written) != string(golden) {
		t.Errorf("written transcript = %q, want %q", written, golden)
	}
}

func TestCLI_FlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "growlist.toml")
	if err := os.WriteFile(cfgPath, []byte("initial_capacity = 1\ngrowth = \"doubling\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	script := filepath.Join(dir, "cap.gl")
	if err := os.WriteFile(script, []byte("append a\nappend b\nappend c\ncap\n"), 0644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := runCommand(t, "--config", cfgPath, script)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(stdout, "> cap\n4\n") {
		t.Errorf("expected doubling growth from the config file, got %q", stdout)
	}

	stdout, _, err = runCommand(t, "--config", cfgPath, "--growth", "linear", script)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(stdout, "> cap\n3\n") {
		t.Errorf("expected --growth to override the config file, got %q", stdout)
	}
}

func TestCLI_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"growth", []string{"--growth", "tripling"}},
		{"removal", []string{"--removal", "some"}},
		{"capacity", []string{"--capacity", "-2"}},
		{"huge_capacity", []string{"--capacity", "100000000000000"}},
		{"log_level", []string{"--log-level", "loud"}},
		{"config", []string{"--config", "does-not-exist.toml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(tt.args, testdataPath("scripts", "basics.gl"))
			stdout, _, err := runCommand(t, args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if stdout != "" {
				t.Errorf("expected no output, got %q", stdout)
			}
		})
	}
}

func TestCLI_MissingPath(t *testing.T) {
	_, stderr, err := runCommand(t, filepath.Join(t.TempDir(), "missing.gl"))
	if !errors.Is(err, errProcessing) {
		t.Fatalf("expected errProcessing, got %v", err)
	}
	if !strings.Contains(stderr, "cannot access path") {
		t.Errorf("expected stderr to mention the path error, got %q", stderr)
	}
}

func TestCLI_IgnoresOtherExtensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("append a\n"), 0644); err != nil {
		t.Fatal(err)
	}
	stdout, _, err := runCommand(t, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "" {
		t.Errorf("expected no output, got %q", stdout)
	}
}
