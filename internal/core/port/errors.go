package port

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned by repositories when no row matches.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned by repositories when a uniqueness constraint
	// rejects a write.
	ErrConflict = errors.New("unique constraint violation")
	// ErrLocked is returned when a lock is held by someone else.
	ErrLocked = errors.New("resource is locked")

	// ErrValidation marks user input and precondition failures. They are
	// never retried automatically.
	ErrValidation = errors.New("validation failed")
	// ErrConfiguration marks failures that need an admin to fix data
	// (unknown category, missing restaurant location).
	ErrConfiguration = errors.New("configuration error")
	// ErrPlatformRejected marks a request the ad platform refused for a
	// reason the user can act on.
	ErrPlatformRejected = errors.New("ad platform rejected request")
	// ErrNotPersisted marks an object that exists in the ad platform but
	// could not be saved locally.
	ErrNotPersisted = errors.New("created in ad platform but not saved locally")

	ErrAlreadyPromoted     = fmt.Errorf("%w: post is already promoted", ErrValidation)
	ErrPromotionInProgress = fmt.Errorf("%w: post promotion is already in progress", ErrValidation)
)

// Validationf builds an ErrValidation with a specific message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Configurationf builds an ErrConfiguration with a specific message.
func Configurationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

// PlatformError is the structured error extracted from an ad platform
// response.
type PlatformError struct {
	Status      int
	Code        int
	Subcode     int
	Type        string
	Message     string
	UserMessage string
}

func (e *PlatformError) Error() string {
	msg := fmt.Sprintf("ad platform error %d", e.Code)
	if e.Subcode != 0 {
		msg += fmt.Sprintf("/%d", e.Subcode)
	}
	msg += ": " + e.Message
	if e.UserMessage != "" && e.UserMessage != e.Message {
		msg += " (" + e.UserMessage + ")"
	}
	return msg
}

// Step names a stage of the promotion pipeline.
type Step string

const (
	StepValidate    Step = "validate"
	StepClassify    Step = "classify"
	StepOpportunity Step = "opportunity"
	StepAdSet       Step = "ad_set"
	StepCreative    Step = "creative"
	StepAd          Step = "ad"
	StepEvent       Step = "event"
	StepCount       Step = "ads_count"
	StepPersist     Step = "persist_post"
)

// StepError reports which step failed and which external objects already
// exist, so an operator can reconcile them by hand.
type StepError struct {
	Step      Step
	Err       error
	Leftovers map[string]string
}

func (e *StepError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "step %s failed: %v", e.Step, e.Err)
	if len(e.Leftovers) > 0 {
		b.WriteString("; already created in ad platform:")
		for _, k := range []string{"ad_set", "creative", "ad"} {
			if v, ok := e.Leftovers[k]; ok {
				fmt.Fprintf(&b, " %s=%s", k, v)
			}
		}
	}
	return b.String()
}

func (e *StepError) Unwrap() error { return e.Err }
