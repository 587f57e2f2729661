package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrUnknownDomain     = errors.New("unknown domain")
	ErrOracleUnavailable = errors.New("oracle mode not configured")
)
