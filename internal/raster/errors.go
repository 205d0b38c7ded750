package raster

import "errors"

var (
	// ErrInvalidArgument marks caller errors that are detectable before the
	// call: out-of-range region indices, ROIs outside the image, chunk
	// overlap not smaller than chunk size. Never worth retrying.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnavailable marks a backing resource that cannot be opened, decoded
	// or normalized. Fatal for the current operation; the caller may retry
	// after fixing the source.
	ErrUnavailable = errors.New("resource unavailable")

	// ErrUnsupported marks an operation the image family cannot perform,
	// such as pixel reads on a metadata-only image. Signals a usage
	// mismatch, not a transient condition.
	ErrUnsupported = errors.New("unsupported operation")
)
