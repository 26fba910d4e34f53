package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/HendryAvila/cadence/internal/config"
	"github.com/HendryAvila/cadence/internal/recommend"
)

// run executes the CLI with an isolated config file and data dir.
func run(t *testing.T, dir, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{
		"--config", filepath.Join(dir, "cadence.yaml"),
		"--data-dir", filepath.Join(dir, "data"),
	}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, t.TempDir(), "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "cadence v") {
		t.Errorf("output = %q", out)
	}
}

func TestLoad_CreatesConfigFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := run(t, dir, "", "history"); err != nil {
		t.Fatalf("history: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "cadence.yaml")); err != nil {
		t.Errorf("config file not created: %v", err)
	}
}

func TestLoad_BadLogLevel(t *testing.T) {
	_, err := run(t, t.TempDir(), "", "--log-level", "loud", "history")
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestRecommend(t *testing.T) {
	out, err := run(t, t.TempDir(), "", "recommend", "--age", "15", "--mood", "10", "--time", "8", "--tempo", "180")
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	for _, want := range []string{
		"Inputs: age=15, mood=10, listening_time=8, tempo=180",
		"  Age: young",
		"  Tempo: fast",
		"Your recommendation score is: 95.33",
		"Recommended genre: Pop",
		"Here are 3 song suggestions:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRecommend_OutOfRange(t *testing.T) {
	_, err := run(t, t.TempDir(), "", "recommend", "--age", "70", "--mood", "5", "--time", "8", "--tempo", "100")
	if !errors.Is(err, recommend.ErrOutOfRange) {
		t.Errorf("err = %v, want ErrOutOfRange", err)
	}
}

func TestRecommend_RequiresFlags(t *testing.T) {
	if _, err := run(t, t.TempDir(), "", "recommend", "--age", "30"); err == nil {
		t.Error("expected error for missing flags")
	}
}

func TestAsk(t *testing.T) {
	stdin := "abc\n5\n15\n11\n10\n8\n180\n"
	out, err := run(t, t.TempDir(), stdin, "ask")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	for _, want := range []string{
		"Enter your age (10-60): ",
		"Invalid input. Please enter a valid value.",
		"Input must be between 10 and 60. Please try again.",
		"Input must be between 0 and 10. Please try again.",
		"Recommended genre: Pop",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestAsk_NoActiveRule(t *testing.T) {
	out, err := run(t, t.TempDir(), "30\n5\n18\n100\n", "ask")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if !strings.Contains(out, "Input or computation error: no active rule") {
		t.Errorf("output:\n%s", out)
	}
}

func TestAsk_EOF(t *testing.T) {
	_, err := run(t, t.TempDir(), "30\n", "ask")
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("err = %v, want ErrUnexpectedEOF", err)
	}
}

func TestBatchAndHistory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "listeners.yaml")
	listeners := `
- {age: 15, mood: 10, listening_time: 8, tempo: 180}
- {age: 30, mood: 5, listening_time: 21, tempo: 100}
- {age: 55, mood: 0, listening_time: 8, tempo: 100}
`
	if err := os.WriteFile(file, []byte(listeners), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, dir, "", "batch", file, "--count", "2")
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	for _, want := range []string{"GENRE", "Pop", "Classical", "no active rule"} {
		if !strings.Contains(out, want) {
			t.Errorf("batch output missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, dir, "", "history", "--limit", "5")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if strings.Count(out, "age=") != 2 {
		t.Errorf("history should list 2 recommendations:\n%s", out)
	}
}

func TestBatch_BadFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(file, []byte("age: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, dir, "", "batch", file); err == nil {
		t.Error("expected parse error")
	}
}

func TestHistory_Empty(t *testing.T) {
	out, err := run(t, t.TempDir(), "", "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "No recommendations yet.") {
		t.Errorf("output = %q", out)
	}
}
