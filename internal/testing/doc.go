// Package testing contains fixtures and assertions shared by package tests:
// temporary workspaces with a source tree and file-system assertions on the
// rendered output.
package testing

const (
	// testDirPermissions is the permission mode for creating test directories.
	testDirPermissions = 0o750

	// testFilePermissions is the permission mode for creating test files.
	testFilePermissions = 0o600
)
