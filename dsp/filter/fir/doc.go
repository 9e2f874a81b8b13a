// Package fir designs linear-phase FIR bandpass filters and applies them
// with zero phase distortion.
//
// [Design] builds a windowed-sinc bandpass from a [Spec]. The taps are
// symmetric and scaled for unity gain at the centre of the passband:
//
//	h, err := fir.Design(fir.DefaultSpec(200))
//
// [FiltFilt] runs the filter forward and backward over an edge-padded copy
// of the input, which squares the magnitude response and cancels the phase:
//
//	y, err := fir.FiltFilt(h, x)
//
// [Lfilter] is the single causal pass both directions are built from. It
// convolves through dsp/conv, so long kernels take the FFT path.
package fir
