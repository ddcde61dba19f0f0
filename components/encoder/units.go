package encoder

// TicksPerRotation is the rotation sensor's native resolution.
const TicksPerRotation = 36000

// TicksPerDegree is TicksPerRotation / 360.
const TicksPerDegree = TicksPerRotation / 360

// TicksToRotations converts a raw sensor position to rotations.
func TicksToRotations(ticks int64) float64 {
	return float64(ticks) * (1.0 / TicksPerRotation)
}

// DegreesPerSecondToRPM converts a raw sensor velocity to revolutions per minute.
func DegreesPerSecondToRPM(degPerSec float64) float64 {
	return degPerSec * (1.0 / 360.0) * 60.0
}

// RPMToDegreesPerSecond is the inverse of DegreesPerSecondToRPM.
func RPMToDegreesPerSecond(rpm float64) float64 {
	return rpm * 360.0 / 60.0
}
