package evo

import "errors"

var (
	ErrInvalidConfig = errors.New("invalid experiment configuration")
	ErrShapeMismatch = errors.New("individual length does not match dataset columns")
	ErrSampling      = errors.New("not enough individuals to sample")
)
