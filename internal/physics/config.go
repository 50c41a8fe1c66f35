package physics

// Config is the immutable input to Seed. It is built once at the settings
// boundary and already validated; nothing in this package re-checks it.
type Config struct {
	Count         int     // number of bodies N
	G             float32 // gravitational constant
	Density       float32 // shared by every body: mass = 4/3·π·r³·Density
	SunScale      float32 // radius multiplier for light sources
	LocationSD    float32 // σ of the location magnitude (or shell radius when Shell is set)
	VelocitySD    float32 // σ of the velocity magnitude
	RadiusMin     float32
	RadiusMax     float32
	LightFraction float32 // probability that a body is a light source
	Seed          uint64
	Shell         bool // place bodies on a sphere of radius LocationSD instead of a normal cloud
}

// DefaultConfig returns the values the settings dialog starts with.
func DefaultConfig() Config {
	return Config{
		Count:         100,
		G:             6.674,
		Density:       0.8,
		SunScale:      4,
		LocationSD:    55,
		VelocitySD:    2.5,
		RadiusMin:     1,
		RadiusMax:     5,
		LightFraction: 0.05,
		Seed:          1,
	}
}
