package util

import "errors"

var (
	ErrRecordMalformed = errors.New("document record is missing required fields")
	ErrEmptyGraph      = errors.New("graph artifact contains no nodes")
)
