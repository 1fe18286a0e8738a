// Package fractal holds the escape-time maths behind the renderer.
//
// Everything here is pure and free of shared state:
//
//   - [EscapeIterations]: the quadratic recurrence for a single point
//   - [Region]: the complex-plane rectangle covered by an output image
//   - [IterationImage]: a row-major buffer of raw escape counts
//
// Because [EscapeIterations] only reads its arguments, any number of
// goroutines (or GPU threads) may evaluate disjoint pixels concurrently
// without synchronisation.
package fractal
