// Package subtitle holds the transcript data model and the SRT/WebVTT
// serializers, including cue timestamp formatting and parsing.
package subtitle
