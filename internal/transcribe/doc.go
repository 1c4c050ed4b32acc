// Package transcribe adapts external speech-recognition capabilities to a
// single Engine interface consuming normalized audio sample buffers and
// producing ordered transcript segments.
package transcribe
