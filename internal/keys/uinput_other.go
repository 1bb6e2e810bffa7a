//go:build !linux && !windows

package keys

import (
	"runtime"

	"github.com/pkg/errors"
)

// UinputInjector is only available on Linux; Windows uses SendInput.
type UinputInjector struct{}

// NewInjector creates the platform injector. There is none on this platform;
// callers fall back to a LogInjector.
func NewInjector(name string) (*UinputInjector, error) {
	return nil, errors.Errorf("no key injection backend for %s", runtime.GOOS)
}

func (i *UinputInjector) Press(k VirtualKey) error   { return ErrUnmappedKey }
func (i *UinputInjector) Release(k VirtualKey) error { return ErrUnmappedKey }
func (i *UinputInjector) Close() error               { return nil }
