package wage

import "errors"

var (
	ErrInvalidRate = errors.New("wage rate must be positive")
)
