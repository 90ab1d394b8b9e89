package version

// Set at build time with -ldflags "-X jetdash/internal/version.Version=..."
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// Info is the build metadata as reported by /api/version
func Info() map[string]string {
	return map[string]string{
		"version":   Version,
		"commit":    Commit,
		"buildTime": BuildTime,
	}
}

// String is the one-line form used by --version
func String() string {
	return Version + " (" + Commit + ", built " + BuildTime + ")"
}
