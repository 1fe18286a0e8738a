// Package compute provides the parallel backends that evaluate the escape
// kernel for every pixel of a frame.
//
// Backends share one execution model taken from GPU kernel launches: a
// fixed 2-D [Grid] of compute units, each walking the image with strided
// loops. Unit (ux, uy) handles columns ux, ux+X, ux+2X, ... of rows
// uy, uy+Y, ..., so a small grid still covers an arbitrarily large image.
//
//   - CUDA: the kernel runs on the GPU (build with -tags cuda)
//   - CPU: one goroutine per grid unit
//
// Select a backend by name:
//
//	backend, err := compute.Select("auto", compute.Grid{})
//	err = backend.Escape(ctx, region, img, 1024)
//
// Build with CUDA support:
//
//	./internal/compute/build_cuda.sh
//	go build -tags cuda ./cmd/mandelview
package compute
