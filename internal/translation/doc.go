// Package translation implements the pipeline stage that rewrites transcript
// segments into the target language through a chat-completions API, keeping
// segment count and order intact.
package translation
