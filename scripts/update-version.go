package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var (
	semverRe  = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	versionRe = regexp.MustCompile(`Version\s*=\s*"[^"]*"`)
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Error: Version not provided")
		fmt.Fprintln(os.Stderr, "Usage: go run ./scripts <version>")
		os.Exit(1)
	}

	version := os.Args[1]
	fmt.Printf("Updating version to %s...\n", version)

	// Run from the module root
	projectRoot, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
		os.Exit(1)
	}

	if err := updateVersion(projectRoot, version); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nVersion successfully updated to %s\n", version)
}

// updateVersion writes version to version.json and version.go under root.
func updateVersion(root, version string) error {
	if !semverRe.MatchString(version) {
		return fmt.Errorf("version must be in format X.Y.Z (e.g., 1.0.0), got %q", version)
	}

	goPath := filepath.Join(root, "version.go")
	src, err := os.ReadFile(goPath)
	if err != nil {
		return fmt.Errorf("reading version.go: %w", err)
	}
	if !versionRe.Match(src) {
		return fmt.Errorf("no Version constant in %s", goPath)
	}

	data, err := json.MarshalIndent(map[string]string{"version": version}, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(filepath.Join(root, "version.json"), data, 0644); err != nil {
		return fmt.Errorf("writing version.json: %w", err)
	}
	fmt.Println("✓ Updated version.json")

	updated := versionRe.ReplaceAll(src, []byte(fmt.Sprintf(`Version = "%s"`, version)))
	if err := os.WriteFile(goPath, updated, 0644); err != nil {
		return fmt.Errorf("writing version.go: %w", err)
	}
	fmt.Println("✓ Updated version.go")
	return nil
}
