package nestmap

import (
	"github.com/cockroachdb/errors"
	"github.com/signadot/nestmap/walk"
)

var (
	ErrKeyNotFound  = walk.ErrKeyNotFound
	ErrTypeMismatch = walk.ErrTypeMismatch
	ErrEmptyAddress = walk.ErrEmptyAddress

	ErrLocked             = errors.New("container is locked")
	ErrInvalidType        = errors.New("invalid type")
	ErrConflictingOptions = errors.New("conflicting options")
	ErrCycle              = errors.New("container cannot hold itself")
)
