package service

import "errors"

var (
	// ErrSetNotFound indicates no saved set has the requested ID.
	ErrSetNotFound = errors.New("saved session set not found")

	// ErrPeriodNotFound indicates no summary period matches the selector.
	ErrPeriodNotFound = errors.New("summary period not found")
)
