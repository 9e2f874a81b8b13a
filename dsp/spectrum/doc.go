// Package spectrum analyses signals and filters in the frequency domain.
//
// [MagnitudeSpectrum] gives the single-sided amplitude spectrum of a signal,
// [Welch] an averaged power spectral density, and [FrequencyResponse] the
// dB magnitude response of FIR taps. The bin helpers [Magnitude] and [Power]
// work on complex bins from any FFT backend.
package spectrum
