// Package render turns field frames into drawing calls.
//
// A [Surface] is the minimal 2D context a host must provide. [Replay] plays
// a frame's command list onto any Surface, so hosts only need to adapt their
// library's primitives:
//
//   - [Canvas]: Braille-based dot canvas used by the terminal host
//   - [Recorder]: in-memory surface for tests and statistics
//   - raster.Surface: image.RGBA rasteriser used for files and framebuffers
package render
