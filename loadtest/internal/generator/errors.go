package generator

import "errors"

var (
	errDistribution = errors.New("generator: distribution weights must sum to 1.0")
	errClients      = errors.New("generator: clients must be positive")
)
