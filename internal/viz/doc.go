// Package viz replays simulated lines in the terminal.
//
//   - [Model]: Bubble Tea program animating voltage against position
//   - [Canvas]: Braille-based pixel canvas, also rasterized for GIF frames
//   - [EncodeGIF]: write captured frames as a looping animation
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	R     - Restart from t = 0
//	[ ]   - Step back/forward (pauses)
//	+ -   - Playback speed
//	G     - Toggle GIF recording
//	?     - Show help overlay
//
// # Recording
//
// Frames captured while recording are written to <name>.gif in the
// current directory when recording stops.
package viz
