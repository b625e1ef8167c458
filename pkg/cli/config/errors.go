package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrInvalidConfig = goerr.New("invalid configuration")
	ErrMissingName   = goerr.New("name is required")
	ErrDuplicateName = goerr.New("duplicate name")
)
