// Package synthesis implements the pipeline stage that renders translated
// segments with Coqui XTTS and assembles them into one dub track.
//
// Alignment policy: each segment is placed at its original start offset.
// Renders shorter than their slot get silence appended; renders longer get
// compressed with ffmpeg's atempo filter up to a configured cap, and any
// remaining overrun is accepted as drift.
package synthesis
