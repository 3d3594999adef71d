package release

import "errors"

var ErrPrepare = errors.New("release preparation failed")
