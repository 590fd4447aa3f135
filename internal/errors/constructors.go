package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *BuildError {
	return New(CategoryConfig, SeverityFatal, "language configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(reason string) *BuildError {
	return New(CategoryConfig, SeverityFatal, "invalid language configuration").
		WithContext("reason", reason)
}

// External tool errors

// ToolFailed wraps a non-zero external tool exit; the code is forwarded
// verbatim as the process exit code.
func ToolFailed(err error, operation string, code int) *BuildError {
	return Wrap(err, CategoryTool, SeverityFatal, "external tool failed").
		WithContext("operation", operation).
		WithExitCode(code)
}

func ToolNotFound(err error, binary string) *BuildError {
	return Wrap(err, CategoryTool, SeverityFatal, "external tool not found").
		WithContext("binary", binary)
}

// Merge errors

func MergeFailed(err error, language, step string) *BuildError {
	return Wrap(err, CategoryMerge, SeverityFatal, "merge failed").
		WithContext("language", language).
		WithContext("step", step)
}

// Filesystem errors

func FileSystemError(err error, operation, path string) *BuildError {
	return Wrap(err, CategoryFileSystem, SeverityError, operation).
		WithContext("path", path)
}
