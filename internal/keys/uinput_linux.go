//go:build linux

package keys

import (
	"sync"

	"github.com/bendahl/uinput"
	"github.com/pkg/errors"
)

const uinputPath = "/dev/uinput"

// evdevCodes translates virtual keys to Linux input event codes. Keys with
// no entry fail with ErrUnmappedKey.
var evdevCodes = map[VirtualKey]int{
	Backspace: uinput.KeyBackspace,
	Tab:       uinput.KeyTab,
	Enter:     uinput.KeyEnter,
	Shift:     uinput.KeyLeftshift,
	Control:   uinput.KeyLeftctrl,
	Alt:       uinput.KeyLeftalt,
	Pause:     uinput.KeyPause,
	CapsLock:  uinput.KeyCapslock,
	Escape:    uinput.KeyEsc,

	Space:       uinput.KeySpace,
	PageUp:      uinput.KeyPageup,
	PageDown:    uinput.KeyPagedown,
	End:         uinput.KeyEnd,
	Home:        uinput.KeyHome,
	Left:        uinput.KeyLeft,
	Up:          uinput.KeyUp,
	Right:       uinput.KeyRight,
	Down:        uinput.KeyDown,
	PrintScreen: uinput.KeySysrq,
	Insert:      uinput.KeyInsert,
	Delete:      uinput.KeyDelete,
	Help:        uinput.KeyHelp,

	Digit0: uinput.Key0, Digit1: uinput.Key1, Digit2: uinput.Key2, Digit3: uinput.Key3,
	Digit4: uinput.Key4, Digit5: uinput.Key5, Digit6: uinput.Key6, Digit7: uinput.Key7,
	Digit8: uinput.Key8, Digit9: uinput.Key9,

	A: uinput.KeyA, B: uinput.KeyB, C: uinput.KeyC, D: uinput.KeyD, E: uinput.KeyE,
	F: uinput.KeyF, G: uinput.KeyG, H: uinput.KeyH, I: uinput.KeyI, J: uinput.KeyJ,
	K: uinput.KeyK, L: uinput.KeyL, M: uinput.KeyM, N: uinput.KeyN, O: uinput.KeyO,
	P: uinput.KeyP, Q: uinput.KeyQ, R: uinput.KeyR, S: uinput.KeyS, T: uinput.KeyT,
	U: uinput.KeyU, V: uinput.KeyV, W: uinput.KeyW, X: uinput.KeyX, Y: uinput.KeyY,
	Z: uinput.KeyZ,

	LeftWin:  uinput.KeyLeftmeta,
	RightWin: uinput.KeyRightmeta,
	Apps:     uinput.KeyCompose,
	Sleep:    uinput.KeySleep,

	Numpad0: uinput.KeyKp0, Numpad1: uinput.KeyKp1, Numpad2: uinput.KeyKp2,
	Numpad3: uinput.KeyKp3, Numpad4: uinput.KeyKp4, Numpad5: uinput.KeyKp5,
	Numpad6: uinput.KeyKp6, Numpad7: uinput.KeyKp7, Numpad8: uinput.KeyKp8,
	Numpad9: uinput.KeyKp9,
	Multiply: uinput.KeyKpasterisk,
	Add:      uinput.KeyKpplus,
	Subtract: uinput.KeyKpminus,
	Decimal:  uinput.KeyKpdot,
	Divide:   uinput.KeyKpslash,

	F1: uinput.KeyF1, F2: uinput.KeyF2, F3: uinput.KeyF3, F4: uinput.KeyF4,
	F5: uinput.KeyF5, F6: uinput.KeyF6, F7: uinput.KeyF7, F8: uinput.KeyF8,
	F9: uinput.KeyF9, F10: uinput.KeyF10, F11: uinput.KeyF11, F12: uinput.KeyF12,
	F13: uinput.KeyF13, F14: uinput.KeyF14, F15: uinput.KeyF15, F16: uinput.KeyF16,
	F17: uinput.KeyF17, F18: uinput.KeyF18, F19: uinput.KeyF19, F20: uinput.KeyF20,
	F21: uinput.KeyF21, F22: uinput.KeyF22, F23: uinput.KeyF23, F24: uinput.KeyF24,

	NumLock:    uinput.KeyNumlock,
	ScrollLock: uinput.KeyScrolllock,

	LeftShift:    uinput.KeyLeftshift,
	RightShift:   uinput.KeyRightshift,
	LeftControl:  uinput.KeyLeftctrl,
	RightControl: uinput.KeyRightctrl,
	LeftAlt:      uinput.KeyLeftalt,
	RightAlt:     uinput.KeyRightalt,

	BrowserBack:      uinput.KeyBack,
	BrowserForward:   uinput.KeyForward,
	BrowserRefresh:   uinput.KeyRefresh,
	BrowserSearch:    uinput.KeySearch,
	BrowserFavorites: uinput.KeyBookmarks,
	BrowserHome:      uinput.KeyHomepage,

	VolumeMute: uinput.KeyMute,
	VolumeDown: uinput.KeyVolumedown,
	VolumeUp:   uinput.KeyVolumeup,

	MediaNext:      uinput.KeyNextsong,
	MediaPrev:      uinput.KeyPrevioussong,
	MediaStop:      uinput.KeyStopcd,
	MediaPlayPause: uinput.KeyPlaypause,
	LaunchMail:     uinput.KeyMail,

	Semicolon:    uinput.KeySemicolon,
	Equals:       uinput.KeyEqual,
	Comma:        uinput.KeyComma,
	Minus:        uinput.KeyMinus,
	Period:       uinput.KeyDot,
	Slash:        uinput.KeySlash,
	Backquote:    uinput.KeyGrave,
	LeftBracket:  uinput.KeyLeftbrace,
	Backslash:    uinput.KeyBackslash,
	RightBracket: uinput.KeyRightbrace,
	Quote:        uinput.KeyApostrophe,
}

// UinputInjector writes key events to a virtual keyboard created through
// /dev/uinput.
type UinputInjector struct {
	mu       sync.Mutex
	keyboard uinput.Keyboard
}

// NewInjector creates the platform injector.
func NewInjector(name string) (*UinputInjector, error) {
	kb, err := uinput.CreateKeyboard(uinputPath, []byte(name))
	if err != nil {
		return nil, errors.Wrapf(err, "create virtual keyboard on %s", uinputPath)
	}
	return &UinputInjector{keyboard: kb}, nil
}

func evdevCode(k VirtualKey) (int, error) {
	code, ok := evdevCodes[k]
	if !ok {
		return 0, errors.Wrap(ErrUnmappedKey, k.String())
	}
	return code, nil
}

func (i *UinputInjector) Press(k VirtualKey) error {
	code, err := evdevCode(k)
	if err != nil {
		return err
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	return errors.Wrapf(i.keyboard.KeyDown(code), "press %s", k)
}

func (i *UinputInjector) Release(k VirtualKey) error {
	code, err := evdevCode(k)
	if err != nil {
		return err
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	return errors.Wrapf(i.keyboard.KeyUp(code), "release %s", k)
}

func (i *UinputInjector) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.keyboard.Close()
}
