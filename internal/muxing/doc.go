// Package muxing implements the final pipeline stage: replacing the video's
// audio track with the assembled dub while stream-copying the video, after
// checking the two durations agree within the configured tolerance.
package muxing
