package core

import (
	"errors"
)

// ErrLayoutMismatch means a GPU-visible struct does not match the byte
// size the shaders were compiled against. Continuing would corrupt GPU
// memory, so initialization must abort.
var ErrLayoutMismatch = errors.New("gpu struct layout mismatch")
