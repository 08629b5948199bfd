package prompt

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// ErrAborted is returned when the user aborts a prompt with Ctrl+C.
var ErrAborted = errors.New("aborted")

// IsAborted reports whether err means the user gave up on the prompt.
func IsAborted(err error) bool {
	return errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrAbort) || errors.Is(err, ErrAborted)
}

func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if IsAborted(err) {
		return ErrAborted
	}
	return err
}

// Input prompts for free text.
func Input(label, defaultValue string) (string, error) {
	p := promptui.Prompt{
		Label:   label,
		Default: defaultValue,
		Validate: func(input string) error {
			if input == "" {
				return errors.New("value is required")
			}
			return nil
		},
	}

	result, err := p.Run()
	return result, wrapError(err)
}

// InputInt prompts for an integer in [lo, hi].
func InputInt(label string, defaultValue, lo, hi int) (int, error) {
	p := promptui.Prompt{
		Label:    label,
		Default:  strconv.Itoa(defaultValue),
		Validate: intRange(lo, hi),
	}

	result, err := p.Run()
	if err != nil {
		return 0, wrapError(err)
	}

	value, _ := strconv.Atoi(result) // validated
	return value, nil
}

// InputUint prompts for an unsigned integer such as a seed.
func InputUint(label string, defaultValue uint64) (uint64, error) {
	p := promptui.Prompt{
		Label:   label,
		Default: strconv.FormatUint(defaultValue, 10),
		Validate: func(input string) error {
			if _, err := strconv.ParseUint(input, 10, 64); err != nil {
				return errors.New("must be a non-negative integer")
			}
			return nil
		},
	}

	result, err := p.Run()
	if err != nil {
		return 0, wrapError(err)
	}

	value, _ := strconv.ParseUint(result, 10, 64)
	return value, nil
}

// intRange returns a promptui validator accepting integers in [lo, hi].
func intRange(lo, hi int) promptui.ValidateFunc {
	return func(input string) error {
		n, err := strconv.Atoi(input)
		if err != nil {
			return errors.New("must be a valid integer")
		}
		if n < lo || n > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}
