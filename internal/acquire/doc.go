// Package acquire implements the first pipeline stage: placing the input
// video into the run workspace from a local path or a yt-dlp download, and
// verifying it carries usable video and audio streams.
package acquire
