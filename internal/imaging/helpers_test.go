package imaging

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// createFile writes a file of the given size and returns its path.
func createFile(t *testing.T, dir, name string, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	return path
}

// fakeEngine records invocations and simulates the engine by writing an
// output file of outputSize bytes to the last argument.
type fakeEngine struct {
	mu          sync.Mutex
	calls       []Invocation
	versionRuns int
	versionErr  error
	identify    string
	outputSize  int
	failOn      func(inv Invocation) string
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{outputSize: 100}
}

func (f *fakeEngine) Binary() string {
	return DefaultBinary
}

func (f *fakeEngine) Run(ctx context.Context, inv Invocation) (*Outcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(inv.Args) == 1 && inv.Args[0] == "-version" {
		f.versionRuns++
		if f.versionErr != nil {
			return &Outcome{ExitCode: -1}, Wrap(KindEngineExecutionFailed, "run", "engine execution failed", f.versionErr)
		}
		return &Outcome{Stdout: "Version: ImageMagick 7.1.1-21 Q16-HDRI"}, nil
	}

	f.calls = append(f.calls, inv)
	if f.failOn != nil {
		if stderr := f.failOn(inv); stderr != "" {
			outcome := &Outcome{ExitCode: 1, Stderr: stderr}
			return outcome, executionError(outcome, errors.New("exit status 1"))
		}
	}

	if inv.Args[0] == "identify" {
		return &Outcome{Stdout: f.identify}, nil
	}

	output := stripFormatPrefix(inv.Args[len(inv.Args)-1])
	if err := os.WriteFile(output, make([]byte, f.outputSize), 0644); err != nil {
		outcome := &Outcome{ExitCode: 1, Stderr: err.Error()}
		return outcome, executionError(outcome, err)
	}
	return &Outcome{}, nil
}

func (f *fakeEngine) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeEngine) versionChecks() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.versionRuns
}

func stripFormatPrefix(output string) string {
	prefix, rest, ok := strings.Cut(output, ":")
	if ok && prefix != "" && prefix == strings.ToUpper(prefix) && !strings.ContainsAny(prefix, `/\`) {
		return rest
	}
	return output
}

// fakeMetadataReader returns fixed fields or a fixed error.
type fakeMetadataReader struct {
	fields map[string]string
	err    error
	closed bool
}

func (f *fakeMetadataReader) ReadMetadata(path string) (map[string]string, error) {
	return f.fields, f.err
}

func (f *fakeMetadataReader) Close() error {
	f.closed = true
	return nil
}
