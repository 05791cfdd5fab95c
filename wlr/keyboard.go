package wlr

// KeyState is the press state carried by a key event.
type KeyState uint32

const (
	KeyReleased KeyState = iota
	KeyPressed
)

// Modifier bits as reported by Keyboard.Modifiers.
const (
	ModifierShift uint32 = 1 << 0
	ModifierCaps  uint32 = 1 << 1
	ModifierCtrl  uint32 = 1 << 2
	ModifierAlt   uint32 = 1 << 3
	ModifierMod2  uint32 = 1 << 4
	ModifierMod3  uint32 = 1 << 5
	ModifierLogo  uint32 = 1 << 6
	ModifierMod5  uint32 = 1 << 7
)

// KeyEvent is the payload of a keyboard's key signal.
type KeyEvent struct {
	TimeMsec    uint32
	Keycode     uint32
	State       KeyState
	UpdateState bool
}

// Keyboard wraps one native keyboard. Destroy-tracked.
type Keyboard struct {
	resource
}

// Modifiers returns the currently effective modifier mask.
func (k *Keyboard) Modifiers() (uint32, error) {
	if err := k.guard(); err != nil {
		return 0, err
	}
	return k.lib().KeyboardModifiersMask(k.h), nil
}

// RepeatInfo returns the configured repeat rate (per second) and delay (ms).
func (k *Keyboard) RepeatInfo() (rate, delay int32, err error) {
	if err := k.guard(); err != nil {
		return 0, 0, err
	}
	return k.lib().KeyboardRepeatRate(k.h), k.lib().KeyboardRepeatDelay(k.h), nil
}

// SetRepeatInfo configures key repeat.
func (k *Keyboard) SetRepeatInfo(rate, delay int32) error {
	if err := k.guard(); err != nil {
		return err
	}
	k.lib().KeyboardSetRepeatInfo(k.h, rate, delay)
	return nil
}

// OnKey subscribes cb to key press/release events.
func (k *Keyboard) OnKey(cb func(*Keyboard, *KeyEvent)) (*Subscription, error) {
	return k.On("key", func(ev Event) {
		cb(ev.Source.(*Keyboard), ev.Data.(*KeyEvent))
	})
}

// OnModifiers subscribes cb to modifier state changes. The new mask is read
// with Modifiers.
func (k *Keyboard) OnModifiers(cb func(*Keyboard)) (*Subscription, error) {
	return k.On("modifiers", func(ev Event) {
		cb(ev.Source.(*Keyboard))
	})
}
