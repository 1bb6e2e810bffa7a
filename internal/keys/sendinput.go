package keys

// Win32 INPUT record for a keyboard event. The trailing padding brings it to
// sizeof(INPUT), whose union is sized by MOUSEINPUT.
type keyboardInput struct {
	inputType uint32
	ki        keybdInput
	_         [8]byte
}

type keybdInput struct {
	vk        uint16
	scan      uint16
	flags     uint32
	time      uint32
	extraInfo uintptr
}

const (
	inputKeyboard = 1

	keyEventExtendedKey = 0x0001
	keyEventKeyUp       = 0x0002
)

// Keys whose scan code carries the E0 prefix. Without the extended flag
// Windows reads them as their numpad twins.
var extendedKeys = map[VirtualKey]bool{
	PageUp: true, PageDown: true, End: true, Home: true,
	Left: true, Up: true, Right: true, Down: true,
	Insert: true, Delete: true, PrintScreen: true,
	RightControl: true, RightAlt: true, LeftWin: true, RightWin: true, Apps: true,
	NumLock: true, Divide: true,
}

// sendInputRecord builds the SendInput record for pressing or releasing k.
// VirtualKey values are Windows virtual-key codes, so the code passes
// through unchanged.
func sendInputRecord(k VirtualKey, up bool) (keyboardInput, error) {
	if k == None {
		return keyboardInput{}, ErrUnmappedKey
	}
	var flags uint32
	if up {
		flags |= keyEventKeyUp
	}
	if extendedKeys[k] {
		flags |= keyEventExtendedKey
	}
	return keyboardInput{
		inputType: inputKeyboard,
		ki:        keybdInput{vk: uint16(k), flags: flags},
	}, nil
}
