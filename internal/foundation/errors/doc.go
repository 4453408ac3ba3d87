// Package errors provides the classified error primitives used across gameshelf.
//
// A ClassifiedError carries a category (config, filesystem, markup, ...), a severity and a
// small context map. The CLI adapter turns the category into a process exit code, so commands
// only need to return errors; they never call os.Exit themselves.
//
// Example usage:
//
//	err := errors.WrapError(ioErr, errors.CategoryFileSystem, "write core document").
//		WithContext("path", corePath).
//		Build()
package errors
