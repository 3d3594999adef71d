package gobuild

import "errors"

var (
	ErrCompile        = errors.New("compilation failed")
	ErrInvalidVersion = errors.New("invalid version")
)
