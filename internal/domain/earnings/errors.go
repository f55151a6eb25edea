package earnings

import "errors"

var (
	ErrSettingsNotFound = errors.New("overtime settings not found")
	ErrRecordNotFound   = errors.New("earnings record not found")
)
