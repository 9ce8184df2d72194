package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

func New(msg string) error {
	return cr.New(msg)
}

func Newf(format string, args ...any) error {
	return cr.Newf(format, args...)
}

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return cr.Wrapf(err, format, args...)
}

// Mark attaches markErr as an identity to err so errors.Is(err, markErr) holds
// while the original chain and message are kept.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

// Invalid wraps ErrInvalidInput with a caller facing detail.
func Invalid(format string, args ...any) error {
	return cr.Wrapf(ErrInvalidInput, format, args...)
}

// Is also matches identities attached with Mark.
func Is(err, target error) bool {
	return cr.Is(err, target)
}

// ExtractStackLines renders err with its stack trace and keeps the first
// maxLines lines. maxLines <= 0 keeps everything.
func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
