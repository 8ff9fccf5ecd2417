// Package spice cross-checks simulated lines against a circuit simulator.
//
// A [Deck] describes the reference circuit: a pulse source behind a series
// resistor, two cascaded lossless lines that expose a middle node, and a
// load resistor. [Deck.WriteNetlist] emits an ngspice batch deck, [Runner]
// executes it and [ReadTraces] parses the wrdata dump. [Compare] resamples
// the reference onto a simulated field and reports the RMS error per probe.
package spice
