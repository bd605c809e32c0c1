package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/declparse/internal/app"
	"github.com/specialistvlad/declparse/internal/registry"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// WriteFiles writes files, keyed by relative path, into a fresh temporary
// directory and returns it.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

// HarnessResult holds the outcome of loading an App from test files.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
}

// LoadApp writes files to a temporary directory and loads an App from it
// with debug logging captured. Set DECLPARSE_TEST_LOGS=true to print the
// logs of every run.
func LoadApp(t *testing.T, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()
	return LoadAppWithContext(context.Background(), t, files, modules...)
}

// LoadAppWithContext is LoadApp with a caller provided context.
func LoadAppWithContext(ctx context.Context, t *testing.T, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()

	dir := WriteFiles(t, files)
	cfg, err := app.NewConfig(app.Config{
		DeclarationPath: dir,
		LogLevel:        "debug",
		LogFormat:       "text",
	})
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}
	a, err := app.NewApp(ctx, logBuffer, cfg, modules...)

	if os.Getenv("DECLPARSE_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}
	return &HarnessResult{LogOutput: logBuffer.String(), Err: err, App: a}
}
