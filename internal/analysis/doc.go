// Package analysis provides frequency analysis of per-frame metric series.
//
// Bouncing balls settle in damped oscillations; [DominantFrequency] picks
// the bounce rate out of a series such as the mean height, using the FFT
// from github.com/mjibson/go-dsp.
package analysis
