// Package conv provides the linear convolution primitive FIR filtering is
// built on.
//
// Two strategies are available:
//
//   - Direct: O(N*M) time-domain convolution, best for short kernels
//   - Overlap-add: FFT-based block convolution for longer kernels
//
// [Convolve] picks one by kernel length:
//
//	full, err := conv.Convolve(signal, kernel)          // len(signal)+len(kernel)-1
//	same, err := conv.ConvolveMode(signal, kernel, conv.ModeSame)
//
// For repeated convolution with the same kernel, create an [OverlapAdd]
// once to reuse its FFT plan and kernel spectrum:
//
//	oa, err := conv.NewOverlapAdd(kernel, 0)
//	out, err := oa.Process(signal)
//
// All functions return freshly allocated output and never modify inputs.
package conv
