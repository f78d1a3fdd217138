package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPatterns(t *testing.T) {
	patterns := DefaultPatterns()
	if len(patterns) == 0 {
		t.Fatal("DefaultPatterns() returned empty slice")
	}

	expected := map[string]bool{
		"*.sh":         false,
		"Makefile":     false,
		"*.mk":         false,
		"Dockerfile":   false,
		"*.Dockerfile": false,
	}
	for _, p := range patterns {
		if _, ok := expected[p]; ok {
			expected[p] = true
		}
	}
	for p, found := range expected {
		if !found {
			t.Errorf("DefaultPatterns() missing expected pattern %q", p)
		}
	}
}

func TestClassifyKind(t *testing.T) {
	cases := map[string]Kind{
		"build.sh":           KindShell,
		"deploy.bash":        KindShell,
		"Makefile":           KindMakefile,
		"makefile":           KindMakefile,
		"Makefile.linux":     KindMakefile,
		"rules.mk":           KindMakefile,
		"Dockerfile":         KindDockerfile,
		"Dockerfile.dev":     KindDockerfile,
		"api.Dockerfile":     KindDockerfile,
		"Containerfile":      KindDockerfile,
		"api.Containerfile":  KindDockerfile,
		"random-text-file":   KindShell,
		"/a/b/c/Dockerfile":  KindDockerfile,
		"/a/b/c/install.sh":  KindShell,
	}
	for name, want := range cases {
		if got := ClassifyKind(name); got != want {
			t.Errorf("ClassifyKind(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestDiscoverFileClassifiesKind(t *testing.T) {
	tmpDir := t.TempDir()
	scriptPath := filepath.Join(tmpDir, "install.sh")
	if err := os.WriteFile(scriptPath, []byte("#!/bin/sh\necho hi\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	results, err := Discover([]string{scriptPath}, Options{})
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Kind != KindShell {
		t.Errorf("expected KindShell, got %v", results[0].Kind)
	}

	absPath, err := filepath.Abs(scriptPath)
	if err != nil {
		t.Fatal(err)
	}
	if results[0].ConfigRoot != filepath.Dir(absPath) {
		t.Errorf("expected ConfigRoot %q, got %q", filepath.Dir(absPath), results[0].ConfigRoot)
	}
}

func TestDiscoverDirectoryFindsAllThreeKinds(t *testing.T) {
	tmpDir := t.TempDir()
	files := []string{
		"build.sh",
		"Makefile",
		"Dockerfile",
		"sub/deploy.bash",
		"sub/nested/api.Dockerfile",
		"not-an-artifact.txt",
	}
	for _, f := range files {
		path := filepath.Join(tmpDir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("content\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	results, err := Discover([]string{tmpDir}, Options{})
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if len(results) != 5 {
		t.Errorf("expected 5 results, got %d", len(results))
		for _, r := range results {
			t.Logf("  found: %s (%v)", r.Path, r.Kind)
		}
	}

	kindCounts := map[Kind]int{}
	for _, r := range results {
		kindCounts[r.Kind]++
	}
	if kindCounts[KindShell] != 2 {
		t.Errorf("expected 2 shell files, got %d", kindCounts[KindShell])
	}
	if kindCounts[KindMakefile] != 1 {
		t.Errorf("expected 1 makefile, got %d", kindCounts[KindMakefile])
	}
	if kindCounts[KindDockerfile] != 2 {
		t.Errorf("expected 2 dockerfiles, got %d", kindCounts[KindDockerfile])
	}
}

func TestDiscoverGlob(t *testing.T) {
	tmpDir := t.TempDir()
	files := []string{"a.sh", "b.sh", "c.bash"}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(tmpDir, f), []byte("echo hi\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	pattern := filepath.Join(tmpDir, "*.sh")
	results, err := Discover([]string{pattern}, Options{})
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
}

func TestDiscoverExclude(t *testing.T) {
	tmpDir := t.TempDir()
	files := []string{"build.sh", "test/build.sh", "vendor/build.sh", "sub/build.sh"}
	for _, f := range files {
		path := filepath.Join(tmpDir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("echo hi\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	opts := Options{ExcludePatterns: []string{"test/*", "vendor/*"}}
	results, err := Discover([]string{tmpDir}, opts)
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
		for _, r := range results {
			t.Logf("  found: %s", r.Path)
		}
	}
}

func TestDiscoverDeduplication(t *testing.T) {
	tmpDir := t.TempDir()
	scriptPath := filepath.Join(tmpDir, "build.sh")
	if err := os.WriteFile(scriptPath, []byte("echo hi\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	results, err := Discover([]string{
		scriptPath,
		scriptPath,
		tmpDir,
		filepath.Join(tmpDir, "build.sh"),
	}, Options{})
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected 1 result after deduplication, got %d", len(results))
	}
}

func TestDiscoverNonexistent(t *testing.T) {
	results, err := Discover([]string{"nonexistent-pattern-*.xyz"}, Options{})
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}
