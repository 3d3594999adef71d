package stage

import "errors"

var (
	ErrPrecondition = errors.New("artifact directory precondition failed")
	ErrStaging      = errors.New("staging failed")
)
