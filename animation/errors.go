package animation

import "errors"

var (
	// ErrMalformedValue is returned when the animation shorthand has more
	// components than it supports.
	ErrMalformedValue = errors.New("malformed value")

	// ErrAlreadyPlaying is returned by Play while the group is playing.
	ErrAlreadyPlaying = errors.New("animation is already playing")

	// ErrAnimationCancelled rejects the Future of a cancelled playback.
	ErrAnimationCancelled = errors.New("animation cancelled")
)
