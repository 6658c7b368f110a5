package convert

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	documentLoadFailed   = "DOCUMENT_LOAD_FAILED"
	documentEncodeFailed = "DOCUMENT_ENCODE_FAILED"
	documentWriteFailed  = "DOCUMENT_WRITE_FAILED"
	convertCanceled      = "CONVERT_CANCELED"
)

func wrapLoadError(err error) error {
	return wrapCommandError(err, "couldn't load document", documentLoadFailed)
}

func wrapEncodeError(err error) error {
	return wrapCommandError(err, "couldn't encode document", documentEncodeFailed)
}

func wrapWriteError(err error) error {
	return wrapCommandError(err, "couldn't write document", documentWriteFailed)
}

func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return wrapCommandError(err, "conversion canceled", convertCanceled)
	}
	return wrapCommandError(err, "conversion failed", "")
}

func wrapCommandError(err error, message, code string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	wrapped := goerrors.Wrap(err, goerrors.CategoryCommand, message)
	if code != "" {
		wrapped = wrapped.WithTextCode(code)
	}
	return wrapped
}
