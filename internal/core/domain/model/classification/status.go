package classification

import (
	"fmt"

	"packhouse/internal/pkg/errs"
)

// Status is the lifecycle state of a classification. The only transition is
// Open -> Finalized.
type Status int

const (
	UnknownStatus Status = iota
	Open
	Finalized
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "Unknown",
		Open:          "Open",
		Finalized:     "Finalized",
	}
}

func (s Status) Validate() error {
	if s != Open && s != Finalized {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}

	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}

	return "Unknown"
}

// Finalize returns the terminal status, or an error unless s is Open.
func (s Status) Finalize() (Status, error) {
	if s != Open {
		return UnknownStatus, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to finalize", s.String()),
		)
	}

	return Finalized, nil
}
