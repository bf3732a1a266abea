package walk

import "github.com/cockroachdb/errors"

var (
	ErrKeyNotFound  = errors.New("key not found")
	ErrInvalidRoot  = errors.New("not a mapping")
	ErrEmptyAddress = errors.New("empty address")
	ErrTypeMismatch = errors.New("type mismatch")
)
