// Package batch discovers input videos and drives the per-file pipeline of
// audio extraction, transcription, and subtitle writing across a bounded
// worker pool with per-job failure isolation.
package batch
