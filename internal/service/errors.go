package service

import (
	"errors"
	"fmt"
	"time"
)

// Client-input failures the handlers translate into 4xx responses.
var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrInvalidStatus = errors.New("invalid status value")
)

type ItemUnavailableError struct {
	Name   string
	Reason string
}

func (e *ItemUnavailableError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Reason)
}

type DeadlinePassedError struct {
	Deadline time.Time
}

func (e *DeadlinePassedError) Error() string {
	return fmt.Sprintf("ordering deadline (%s) has passed for this pickup date", e.Deadline.Format("2006-01-02 15:04"))
}
