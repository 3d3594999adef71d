package pipeline

import "errors"

var ErrPlatformsFailed = errors.New("one or more platforms failed to build")
