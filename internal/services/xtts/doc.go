// Package xtts wraps the Coqui TTS command line tool for voice-cloned
// speech synthesis with the XTTS v2 multilingual model.
package xtts
