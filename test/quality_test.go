package test

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// getProjectRoot returns the project root directory based on this test file's location.
func getProjectRoot() string {
	if projectRoot != "" {
		return projectRoot
	}
	// Fall back to walking up from the working directory
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// skipDir reports whether a directory should stay out of the quality walk.
// Underscore and dot prefixes follow the Go toolchain's own ignore rules.
func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "vendor"
}

// TestNoSkippedTests ensures no test files contain t.Skip() calls.
// Skipped tests hide failures - tests should either pass or fail, never skip.
func TestNoSkippedTests(t *testing.T) {
	chdir(t)
	forbiddenPatterns := []string{
		"t.Skip(",
		"t.SkipNow(",
		"testing.Short()",
	}

	testFiles := collectTestFiles(t, getProjectRoot(), func(path string) bool {
		// Skip this quality test file itself
		if strings.Contains(path, "quality_test.go") {
			return false
		}
		// Skip integration tests - they legitimately use t.Skip for optional external services
		if strings.Contains(path, "integration_test.go") {
			return false
		}
		return true
	})

	violations := []string{}

	for _, testFile := range testFiles {
		f, err := os.Open(testFile)
		if err != nil {
			t.Fatalf("Failed to open %s: %v", testFile, err)
		}

		scanner := bufio.NewScanner(f)
		lineNum := 0
		for scanner.Scan() {
			lineNum++
			line := scanner.Text()

			// Skip comments
			trimmed := strings.TrimSpace(line)
			if strings.HasPrefix(trimmed, "//") {
				continue
			}

			for _, pattern := range forbiddenPatterns {
				if strings.Contains(line, pattern) {
					violations = append(violations,
						fmt.Sprintf("%s:%d: contains forbidden pattern '%s'", testFile, lineNum, pattern))
				}
			}
		}
		f.Close()

		if err := scanner.Err(); err != nil {
			t.Fatalf("Error scanning %s: %v", testFile, err)
		}
	}

	if len(violations) > 0 {
		t.Errorf("Found %d test skip violation(s):\n", len(violations))
		for _, v := range violations {
			t.Errorf("  %s", v)
		}
		t.Error("\nTests should not be skipped. Either:")
		t.Error("  1. Fix the issue causing the skip")
		t.Error("  2. Use t.Fatalf() if a required resource is missing")
		t.Error("  3. Remove the test if it's no longer relevant")
	}
}

// TestNoEmptyTests ensures test discovery finds the package test files.
func TestNoEmptyTests(t *testing.T) {
	chdir(t)
	testFiles := collectTestFiles(t, getProjectRoot(), func(path string) bool {
		return !strings.Contains(path, "quality_test.go")
	})

	if len(testFiles) == 0 {
		t.Fatal("No test files found - something is wrong with test discovery")
	}

	t.Logf("Found %d test files", len(testFiles))
}

// collectTestFiles walks root and returns the _test.go files the keep
// filter accepts.
func collectTestFiles(t *testing.T, root string, keep func(string) bool) []string {
	t.Helper()

	testFiles := []string{}
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if skipDir(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, "_test.go") && keep(path) {
			testFiles = append(testFiles, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to walk directory: %v", err)
	}

	return testFiles
}
