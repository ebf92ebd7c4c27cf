package block

import "errors"

var (
	ErrCannotBlockSelf = errors.New("cannot block yourself")
)
