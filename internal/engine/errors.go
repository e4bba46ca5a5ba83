package engine

import "errors"

var errEmptySnapshot = errors.New("incomplete response (nil snapshot)")
