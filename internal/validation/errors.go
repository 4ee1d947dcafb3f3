package validation

// Error marks input problems the caller can correct. Handlers map it to a
// 400 response.
type Error struct {
	msg string
}

func (e *Error) Error() string {
	return e.msg
}

func newError(msg string) error {
	return &Error{msg: msg}
}
