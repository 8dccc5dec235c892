package grammar

import "errors"

var (
	semErrNoProduction   = errors.New("a grammar needs at least one production")
	semErrReservedSymbol = errors.New("the end-of-input marker is reserved and cannot appear in a production")
	semErrReservedName   = errors.New("this name is reserved and cannot be used as a non-terminal")
)
