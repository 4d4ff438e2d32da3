package gas

import "errors"

// Domain errors for the collision core and simulation driver.
var (
	// ErrInvalidTimeStep indicates a non-positive or non-finite dt.
	ErrInvalidTimeStep = errors.New("gas: time step must be positive and finite")

	// ErrInvalidBounds indicates a rectangle with negative extent.
	ErrInvalidBounds = errors.New("gas: invalid bounds (max < min)")

	// ErrParameterBounds indicates a parameter value outside its valid range.
	ErrParameterBounds = errors.New("gas: parameter out of valid bounds")

	// ErrInvalidParticle indicates a particle with non-positive mass or radius,
	// or a non-finite position or velocity.
	ErrInvalidParticle = errors.New("gas: invalid particle (mass, radius, position and velocity must be positive/finite)")

	// ErrContainment indicates a particle outside the container after a
	// collision update. This is a collision-resolution bug, never a runtime
	// condition, and must not be ignored.
	ErrContainment = errors.New("gas: particle escaped container after collision update")

	// ErrDividerPlacement indicates a divider position outside the open
	// interval between the container's left and right walls.
	ErrDividerPlacement = errors.New("gas: divider must be strictly inside the container")
)
