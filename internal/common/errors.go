package common

import "errors"

var (
	// Input errors raised by the interactive tool.
	ErrEmptyInput      = errors.New("empty input")
	ErrInvalidArgument = errors.New("invalid argument")

	// Session errors.
	ErrNotLoggedIn = errors.New("not logged in")
)
