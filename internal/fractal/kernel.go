package fractal

// EscapeRadiusSq is the squared escape radius. Comparing against it avoids
// a square root per iteration.
const EscapeRadiusSq = 4.0

// EscapeIterations iterates z = z*z + c from z = 0 and returns the index of
// the first iteration whose result satisfies |z|^2 >= 4. Points that do not
// escape within maxIter iterations are treated as members of the set and
// report maxIter.
func EscapeIterations(cReal, cImag float64, maxIter uint32) uint32 {
	var zr, zi float64
	for i := uint32(0); i < maxIter; i++ {
		zr, zi = zr*zr-zi*zi+cReal, 2*zr*zi+cImag
		if zr*zr+zi*zi >= EscapeRadiusSq {
			return i
		}
	}
	return maxIter
}
