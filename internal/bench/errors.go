package bench

import "errors"

var (
	ErrGenerate    = errors.New("generate output")
	ErrWriteOutput = errors.New("write output")
	ErrVerify      = errors.New("verify output")
)
