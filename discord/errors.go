package discord

import "fmt"

// CommandError is a failure that has been reported to the user. Hash is
// shown in the reply so the log entry can be found later.
type CommandError struct {
	Hash    string
	Message string
	Err     error
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (hash %s): %v", e.Message, e.Hash, e.Err)
	}
	return fmt.Sprintf("%s (hash %s)", e.Message, e.Hash)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
