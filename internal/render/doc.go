// Package render turns simulated traces into files: PNG plots via
// gonum/plot, interactive HTML via go-echarts, plain SVG, and animated GIFs
// of voltage against position.
package render
