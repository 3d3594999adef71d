package frontend

import "errors"

var ErrFrontendBuild = errors.New("frontend build failed")
