// pkg/check/combinators.go

package check

// WithMessage reports msg instead of whatever c would report on rejection.
func WithMessage(c Check, msg string) Check {
	return Func(func(candidate string) error {
		if err := c.Evaluate(candidate); err != nil {
			return Reject(msg)
		}
		return nil
	})
}

// Not accepts exactly what c rejects. Its own rejections carry the default
// message.
func Not(c Check) Check {
	return Func(func(candidate string) error {
		if err := c.Evaluate(candidate); err != nil {
			return nil
		}
		return Reject("")
	})
}

// AnyOf accepts when at least one of checks accepts, trying them in order
// and stopping at the first acceptance. With no checks it rejects
// everything.
func AnyOf(checks ...Check) Check {
	return Func(func(candidate string) error {
		for _, c := range checks {
			if c.Evaluate(candidate) == nil {
				return nil
			}
		}
		return Reject("")
	})
}

// All accepts when every check accepts, evaluating in order and returning
// the first rejection unchanged.
func All(checks ...Check) Check {
	return Func(func(candidate string) error {
		for _, c := range checks {
			if err := c.Evaluate(candidate); err != nil {
				return err
			}
		}
		return nil
	})
}
