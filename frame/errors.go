package frame

import "errors"

var (
	// ErrAlreadyRecording is returned by BeginFrame when a different
	// Target currently holds the process-wide recording latch.
	ErrAlreadyRecording = errors.New("frame: another target is already recording")

	// ErrNotRecording is returned by a drawing call or EndFrame made
	// outside a BeginFrame/EndFrame span.
	ErrNotRecording = errors.New("frame: target is not recording")

	// ErrWrongTarget is returned by EndFrame when t is marked as recording
	// but does not hold the process-wide latch. A Target that never began
	// a frame gets ErrNotRecording instead.
	ErrWrongTarget = errors.New("frame: end_frame target does not match the active begin_frame target")

	// ErrPolyTooLarge is returned by DrawPoly when the point count exceeds
	// maxPolyPoints.
	ErrPolyTooLarge = errors.New("frame: polygon exceeds the maximum point count")
)
