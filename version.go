package stats

// Version is bumped by scripts/update-version.go.
const Version = "0.1.0"
