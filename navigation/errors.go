package navigation

import "errors"

var (
	// ErrRegionOverflow signals a cluster with more walkable components
	// than MaxRegions. Fatal to the build: region routing indices would
	// alias beyond the cap
	ErrRegionOverflow = errors.New("navigation: region count exceeds MaxRegions")

	// ErrIslandOverflow signals more disjoint reachability groups than
	// MaxIslands. Fatal to the build
	ErrIslandOverflow = errors.New("navigation: island count exceeds MaxIslands")

	// ErrBuildFailed marks a builder that stopped on a fatal error;
	// inspect the wrapped cause
	ErrBuildFailed = errors.New("navigation: build failed")
)
