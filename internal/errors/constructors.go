package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *CompilerError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(field, reason string) *CompilerError {
	return New(CategoryConfig, SeverityFatal, "invalid configuration").
		WithContext("field", field).
		WithContext("reason", reason)
}

func ValidationFailed(field, reason string) *CompilerError {
	return New(CategoryValidation, SeverityError, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// File system errors

func ReadFailed(path string, cause error) *CompilerError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "failed to read file").
		WithContext("path", path)
}

func WriteFailed(path string, cause error) *CompilerError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "failed to write file").
		WithContext("path", path)
}

// Output errors

func UnsupportedFormat(format string) *CompilerError {
	return New(CategoryValidation, SeverityError, "unsupported output format").
		WithContext("format", format)
}

func RenderFailed(format string, cause error) *CompilerError {
	return Wrap(cause, CategoryRender, SeverityError, "render failed").
		WithContext("format", format)
}

// Cache errors

func CacheError(operation string, cause error) *CompilerError {
	return Wrap(cause, CategoryCache, SeverityWarning, "cache operation failed").
		WithContext("operation", operation)
}

// Internal errors

// StructuralViolation reports a token stream the lexer cannot have produced.
func StructuralViolation(stage string, position int, detail string) *CompilerError {
	return New(CategoryInternal, SeverityFatal, "malformed token stream").
		WithContext("stage", stage).
		WithContext("position", position).
		WithContext("detail", detail)
}

func InternalError(message string, cause error) *CompilerError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
