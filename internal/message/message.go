package message

type ErrMsg struct{ Err error }

func (e ErrMsg) Error() string { return e.Err.Error() }

// ScrollTickMsg drives one step of the smooth scroll animation. ID ties the tick to the animation that scheduled it
type ScrollTickMsg struct {
	ID string
}
