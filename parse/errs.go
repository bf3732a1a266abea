package parse

import (
	"github.com/cockroachdb/errors"
)

var (
	ErrParse      = errors.New("parse error")
	ErrNotMapping = errors.Wrap(ErrParse, "document is not a mapping")
)
