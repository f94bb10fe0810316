package model

// Key is a logical input key, independent of the physical key bound to it.
type Key int

const (
	KeyForward Key = iota
	KeyBackward
	KeyStrafeLeft
	KeyStrafeRight
	KeyRotateLeft
	KeyRotateRight
	KeySprint
	keyCount
)

// InputState is the key-state table polled once per frame.
type InputState [keyCount]bool

func (in *InputState) Set(k Key, pressed bool) {
	if k < 0 || k >= keyCount {
		return
	}
	in[k] = pressed
}

func (in *InputState) Pressed(k Key) bool {
	if k < 0 || k >= keyCount {
		return false
	}
	return in[k]
}

// Reset releases every key.
func (in *InputState) Reset() {
	*in = InputState{}
}
