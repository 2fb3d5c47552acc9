// Package ytdlp wraps the yt-dlp command line tool for remote video
// acquisition.
package ytdlp
