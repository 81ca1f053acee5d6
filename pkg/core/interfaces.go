package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Environment maps a ray direction to a background color. Implementations must
// be safe for concurrent use once constructed.
type Environment interface {
	Lookup(direction Vec3) Vec3
}

// Epsilon is the minimum accepted hit distance and the offset applied along the
// surface normal when spawning shadow and reflection rays.
const Epsilon = 1e-3
