package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/IsaccBarker/Greatness/internal/version.Version=...
	Commit  = "unknown" // -X github.com/IsaccBarker/Greatness/internal/version.Commit=...
	Date    = "unknown" // -X github.com/IsaccBarker/Greatness/internal/version.Date=...
)
