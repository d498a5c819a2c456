// Package location abstracts the device location collaborator the GPS query
// path depends on. The real GPS subsystem lives outside this module; consumers
// plug in their own Provider.
package location

import (
	"context"
	"errors"
)

// ErrNoFix is returned when the provider cannot produce a location fix.
var ErrNoFix = errors.New("no location fix available")

// Fix is one device-reported position.
type Fix struct {
	Lat float64
	Lon float64
}

// Provider supplies the current device position. Implementations block until
// a fix is available, the context ends, or they decide there is no fix.
type Provider interface {
	CurrentFix(ctx context.Context) (Fix, error)
}

// Static is a Provider pinned to one configured position. The daemon uses it
// when fixed coordinates are configured instead of real GPS hardware.
type Static struct {
	fix Fix
}

func NewStatic(lat, lon float64) *Static {
	return &Static{fix: Fix{Lat: lat, Lon: lon}}
}

func (s *Static) CurrentFix(ctx context.Context) (Fix, error) {
	return s.fix, nil
}

// Func adapts a plain function to the Provider interface.
type Func func(ctx context.Context) (Fix, error)

func (f Func) CurrentFix(ctx context.Context) (Fix, error) {
	return f(ctx)
}
