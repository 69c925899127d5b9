package mutate

import "fmt"

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// OpError wraps a failed API call with the flow and step it belonged to.
type OpError struct {
	Op   string
	Step string
	Err  error
}

func (e *OpError) Error() string {
	if e.Step == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Step, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

func opErr(op, step string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Step: step, Err: err}
}
