package component

// KineticComponent holds continuous Q32.32 world position and the velocity
// applied by the motion system each tick
type KineticComponent struct {
	PreciseX int64
	PreciseY int64
	VelX     int64
	VelY     int64
}
