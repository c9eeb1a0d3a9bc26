package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// WriteJSONLines marshals each value on its own line at the target path,
// creating parent directories as needed.
func WriteJSONLines[T any](t testing.TB, path string, values []T) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, value := range values {
		if err := enc.Encode(value); err != nil {
			t.Fatalf("encode line in %s: %v", path, err)
		}
	}
}

// IntPtr returns a pointer to v, for optional-year fixtures.
func IntPtr(v int) *int { return &v }
