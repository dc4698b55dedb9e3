package reservoir

// Error guard failure carrying the failed scope
type Error struct {
	Scope string
}

func (e *Error) Error() string {
	return e.Scope
}

// Require guard a condition, the scope names the failed check as
// "component/reason" and surfaces in logs
func Require(condition bool, scope string) error {
	if condition {
		return nil
	}

	return &Error{Scope: scope}
}
