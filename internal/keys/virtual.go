// Package keys defines the virtual-key space bindings refer to and the
// injectors that turn press/release calls into OS keyboard events.
package keys

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// VirtualKey is an opaque key identifier. Values follow the Windows
// virtual-key code table; injectors translate them to their OS's codes.
type VirtualKey uint8

// None is the null key: a binding with it only presses modifiers.
const None VirtualKey = 0x00

const (
	Cancel     VirtualKey = 0x03
	Backspace  VirtualKey = 0x08
	Tab        VirtualKey = 0x09
	Clear      VirtualKey = 0x0C
	Enter      VirtualKey = 0x0D
	Shift      VirtualKey = 0x10
	Control    VirtualKey = 0x11
	Alt        VirtualKey = 0x12
	Pause      VirtualKey = 0x13
	CapsLock   VirtualKey = 0x14
	Kana       VirtualKey = 0x15
	Junja      VirtualKey = 0x17
	Final      VirtualKey = 0x18
	Kanji      VirtualKey = 0x19
	Escape     VirtualKey = 0x1B
	Convert    VirtualKey = 0x1C
	NonConvert VirtualKey = 0x1D
	Accept     VirtualKey = 0x1E
	ModeChange VirtualKey = 0x1F

	Space       VirtualKey = 0x20
	PageUp      VirtualKey = 0x21
	PageDown    VirtualKey = 0x22
	End         VirtualKey = 0x23
	Home        VirtualKey = 0x24
	Left        VirtualKey = 0x25
	Up          VirtualKey = 0x26
	Right       VirtualKey = 0x27
	Down        VirtualKey = 0x28
	Select      VirtualKey = 0x29
	Print       VirtualKey = 0x2A
	Execute     VirtualKey = 0x2B
	PrintScreen VirtualKey = 0x2C
	Insert      VirtualKey = 0x2D
	Delete      VirtualKey = 0x2E
	Help        VirtualKey = 0x2F
)

const (
	Digit0 VirtualKey = 0x30 + iota
	Digit1
	Digit2
	Digit3
	Digit4
	Digit5
	Digit6
	Digit7
	Digit8
	Digit9
)

const (
	A VirtualKey = 0x41 + iota
	B
	C
	D
	E
	F
	G
	H
	I
	J
	K
	L
	M
	N
	O
	P
	Q
	R
	S
	T
	U
	V
	W
	X
	Y
	Z
)

const (
	LeftWin  VirtualKey = 0x5B
	RightWin VirtualKey = 0x5C
	Apps     VirtualKey = 0x5D
	Sleep    VirtualKey = 0x5F
)

const (
	Numpad0 VirtualKey = 0x60 + iota
	Numpad1
	Numpad2
	Numpad3
	Numpad4
	Numpad5
	Numpad6
	Numpad7
	Numpad8
	Numpad9
	Multiply
	Add
	Separator
	Subtract
	Decimal
	Divide
)

const (
	F1 VirtualKey = 0x70 + iota
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
	F13
	F14
	F15
	F16
	F17
	F18
	F19
	F20
	F21
	F22
	F23
	F24
)

const (
	NumLock    VirtualKey = 0x90
	ScrollLock VirtualKey = 0x91

	LeftShift    VirtualKey = 0xA0
	RightShift   VirtualKey = 0xA1
	LeftControl  VirtualKey = 0xA2
	RightControl VirtualKey = 0xA3
	LeftAlt      VirtualKey = 0xA4
	RightAlt     VirtualKey = 0xA5

	BrowserBack      VirtualKey = 0xA6
	BrowserForward   VirtualKey = 0xA7
	BrowserRefresh   VirtualKey = 0xA8
	BrowserStop      VirtualKey = 0xA9
	BrowserSearch    VirtualKey = 0xAA
	BrowserFavorites VirtualKey = 0xAB
	BrowserHome      VirtualKey = 0xAC

	VolumeMute VirtualKey = 0xAD
	VolumeDown VirtualKey = 0xAE
	VolumeUp   VirtualKey = 0xAF

	MediaNext      VirtualKey = 0xB0
	MediaPrev      VirtualKey = 0xB1
	MediaStop      VirtualKey = 0xB2
	MediaPlayPause VirtualKey = 0xB3
	LaunchMail     VirtualKey = 0xB4
	LaunchMedia    VirtualKey = 0xB5
	LaunchApp1     VirtualKey = 0xB6
	LaunchApp2     VirtualKey = 0xB7

	// OEM punctuation, named after the US layout.
	Semicolon    VirtualKey = 0xBA
	Equals       VirtualKey = 0xBB
	Comma        VirtualKey = 0xBC
	Minus        VirtualKey = 0xBD
	Period       VirtualKey = 0xBE
	Slash        VirtualKey = 0xBF
	Backquote    VirtualKey = 0xC0
	LeftBracket  VirtualKey = 0xDB
	Backslash    VirtualKey = 0xDC
	RightBracket VirtualKey = 0xDD
	Quote        VirtualKey = 0xDE
	Oem8         VirtualKey = 0xDF
	Oem102       VirtualKey = 0xE2

	ProcessKey VirtualKey = 0xE5
	Packet     VirtualKey = 0xE7
	Attn       VirtualKey = 0xF6
	CrSel      VirtualKey = 0xF7
	ExSel      VirtualKey = 0xF8
	EraseEOF   VirtualKey = 0xF9
	Play       VirtualKey = 0xFA
	Zoom       VirtualKey = 0xFB
	PA1        VirtualKey = 0xFD
	OemClear   VirtualKey = 0xFE
)

var keyNames = map[VirtualKey]string{
	None: "None", Cancel: "Cancel", Backspace: "Backspace", Tab: "Tab", Clear: "Clear",
	Enter: "Enter", Shift: "Shift", Control: "Control", Alt: "Alt", Pause: "Pause",
	CapsLock: "CapsLock", Kana: "Kana", Junja: "Junja", Final: "Final", Kanji: "Kanji",
	Escape: "Escape", Convert: "Convert", NonConvert: "NonConvert", Accept: "Accept",
	ModeChange: "ModeChange",

	Space: "Space", PageUp: "PageUp", PageDown: "PageDown", End: "End", Home: "Home",
	Left: "Left", Up: "Up", Right: "Right", Down: "Down", Select: "Select", Print: "Print",
	Execute: "Execute", PrintScreen: "PrintScreen", Insert: "Insert", Delete: "Delete",
	Help: "Help",

	LeftWin: "LeftWin", RightWin: "RightWin", Apps: "Apps", Sleep: "Sleep",

	Multiply: "Multiply", Add: "Add", Separator: "Separator", Subtract: "Subtract",
	Decimal: "Decimal", Divide: "Divide",

	NumLock: "NumLock", ScrollLock: "ScrollLock",
	LeftShift: "LeftShift", RightShift: "RightShift",
	LeftControl: "LeftControl", RightControl: "RightControl",
	LeftAlt: "LeftAlt", RightAlt: "RightAlt",

	BrowserBack: "BrowserBack", BrowserForward: "BrowserForward",
	BrowserRefresh: "BrowserRefresh", BrowserStop: "BrowserStop",
	BrowserSearch: "BrowserSearch", BrowserFavorites: "BrowserFavorites",
	BrowserHome: "BrowserHome",

	VolumeMute: "VolumeMute", VolumeDown: "VolumeDown", VolumeUp: "VolumeUp",
	MediaNext: "MediaNext", MediaPrev: "MediaPrev", MediaStop: "MediaStop",
	MediaPlayPause: "MediaPlayPause", LaunchMail: "LaunchMail", LaunchMedia: "LaunchMedia",
	LaunchApp1: "LaunchApp1", LaunchApp2: "LaunchApp2",

	Semicolon: "Semicolon", Equals: "Equals", Comma: "Comma", Minus: "Minus",
	Period: "Period", Slash: "Slash", Backquote: "Backquote",
	LeftBracket: "LeftBracket", Backslash: "Backslash", RightBracket: "RightBracket",
	Quote: "Quote", Oem8: "Oem8", Oem102: "Oem102",

	ProcessKey: "ProcessKey", Packet: "Packet", Attn: "Attn", CrSel: "CrSel",
	ExSel: "ExSel", EraseEOF: "EraseEOF", Play: "Play", Zoom: "Zoom", PA1: "PA1",
	OemClear: "OemClear",
}

// Punctuation accepted as a key name in configuration files.
var symbolAliases = map[string]VirtualKey{
	";": Semicolon, "=": Equals, ",": Comma, "-": Minus, ".": Period, "/": Slash,
	"`": Backquote, "[": LeftBracket, `\`: Backslash, "]": RightBracket, "'": Quote,
}

var byName = make(map[string]VirtualKey)

func init() {
	for k := Digit0; k <= Digit9; k++ {
		keyNames[k] = string(rune('0' + k - Digit0))
	}
	for k := A; k <= Z; k++ {
		keyNames[k] = string(rune('A' + k - A))
	}
	for k := Numpad0; k <= Numpad9; k++ {
		keyNames[k] = fmt.Sprintf("Numpad%d", k-Numpad0)
	}
	for k := F1; k <= F24; k++ {
		keyNames[k] = fmt.Sprintf("F%d", k-F1+1)
	}
	for k, name := range keyNames {
		byName[strings.ToLower(name)] = k
	}
	for sym, k := range symbolAliases {
		byName[sym] = k
	}
}

func (k VirtualKey) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("VK(0x%02X)", uint8(k))
}


// Parse looks a key up by name, case-insensitively. The empty string is the
// null key.
func Parse(name string) (VirtualKey, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return None, nil
	}
	if k, ok := byName[n]; ok {
		return k, nil
	}
	return None, errors.Errorf("unknown key %q", name)
}
