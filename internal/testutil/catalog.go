// Package testutil provides shared test helpers: the default catalog,
// scripted randomness, and a Telnet test client.
package testutil

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/cory-johannsen/lootgame/content"
)

// Catalog loads the embedded default catalog or fails the test.
//
// Postcondition: Returns a fully validated catalog.
func Catalog(t testing.TB) *content.Catalog {
	t.Helper()
	cat, err := content.Load(content.Embedded())
	if err != nil {
		t.Fatalf("loading embedded catalog: %v", err)
	}
	return cat
}

// ScriptDir returns the absolute path of the repository's content/scripts
// directory.
func ScriptDir(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("locating testutil source file")
	}
	return filepath.Join(filepath.Dir(file), "..", "..", "content", "scripts")
}
