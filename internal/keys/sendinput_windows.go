//go:build windows

package keys

import (
	"sync"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

var (
	user32        = windows.NewLazySystemDLL("user32.dll")
	procSendInput = user32.NewProc("SendInput")
)

// SendInputInjector synthesizes key events with user32 SendInput, the same
// path physical keyboards take, so the foreground window receives them.
type SendInputInjector struct {
	mu sync.Mutex
}

// NewInjector creates the platform injector. name is unused on Windows,
// SendInput has no device to label.
func NewInjector(name string) (*SendInputInjector, error) {
	if err := procSendInput.Find(); err != nil {
		return nil, errors.Wrap(err, "load SendInput")
	}
	return &SendInputInjector{}, nil
}

func (i *SendInputInjector) Press(k VirtualKey) error {
	return errors.Wrapf(i.send(k, false), "press %s", k)
}

func (i *SendInputInjector) Release(k VirtualKey) error {
	return errors.Wrapf(i.send(k, true), "release %s", k)
}

func (i *SendInputInjector) send(k VirtualKey, up bool) error {
	in, err := sendInputRecord(k, up)
	if err != nil {
		return errors.Wrap(err, k.String())
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	n, _, callErr := procSendInput.Call(1, uintptr(unsafe.Pointer(&in)), unsafe.Sizeof(in))
	if n != 1 {
		return errors.Wrap(callErr, "SendInput")
	}
	return nil
}

func (i *SendInputInjector) Close() error {
	return nil
}
