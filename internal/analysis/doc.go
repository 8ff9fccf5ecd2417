// Package analysis measures probe traces taken from a simulated line.
//
//   - [Peak], [TroughAfter]: overshoot and the undershoot that follows it
//   - [ArrivalIndex], [SettlingIndex]: edge arrival and settling
//   - [RMSDiff]: agreement between two traces on the same time axis
//   - [PowerSpectrum], [DominantFrequency]: ringing frequency via FFT
//   - [Summarize]: all of the above for one trace
//
// # Example
//
//	s := analysis.Summarize(f.Load(), p.TimeStep())
//	fmt.Printf("overshoot %.3f at t=%.2f, rings at %.3f\n", s.Peak, s.PeakTime, s.RingingFreq)
package analysis
