// Package pcm turns video files into normalized mono 16kHz float sample
// buffers by piping ffmpeg's raw s16le output, and encodes such buffers back
// into WAV containers for tools that cannot read a bare sample stream.
package pcm
