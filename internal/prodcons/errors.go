package prodcons

import "errors"

// ErrInvalidConfig indicates a Config that could never run to completion.
var ErrInvalidConfig = errors.New("prodcons: invalid config")
