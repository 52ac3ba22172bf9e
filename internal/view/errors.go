package view

import "errors"

var ErrInvalidFilter = errors.New("invalid filter value")
