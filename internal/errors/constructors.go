package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string, cause error) *KssgError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(path string, cause error) *KssgError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration invalid").
		WithContext("path", path)
}

func ConfigExists(path string, cause error) *KssgError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration file already exists").
		WithContext("path", path)
}

// Build pipeline errors

func ClassificationFailed(item string, cause error) *KssgError {
	return Wrap(cause, CategoryValidation, SeverityFatal, "source classification failed").
		WithContext("item", item)
}

func TemplateFailed(item string, cause error) *KssgError {
	return Wrap(cause, CategoryTemplate, SeverityFatal, "template rendering failed").
		WithContext("item", item)
}

func BuildFailed(stage string, cause error) *KssgError {
	return Wrap(cause, CategoryBuild, SeverityFatal, "build failed").
		WithContext("stage", stage)
}

func FileSystemError(operation string, cause error) *KssgError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "filesystem operation failed").
		WithContext("operation", operation)
}

// Runtime errors

func ServerError(cause error) *KssgError {
	return Wrap(cause, CategoryRuntime, SeverityFatal, "preview server failed")
}

// Internal errors

func InternalError(message string, cause error) *KssgError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
