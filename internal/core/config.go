package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to the host screen and for deterministic content.
type RuntimeConfig struct {
	ScreenW int   // Screen width in tiles
	ScreenH int   // Screen height in tiles
	FPS     int   // Target frames per second
	Seed    int64 // RNG seed for deterministic content generation
}

// DefaultConfig returns a RuntimeConfig matching the reference host screen.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 28,
		ScreenH: 16,
		FPS:     30,
		Seed:    0, // 0 means use current time in the driver layer
	}
}
