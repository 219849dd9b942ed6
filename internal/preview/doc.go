// Package preview serves the rendered site for local authoring.
//
// Serve performs a clean build, watches the source directory and rebuilds
// on every change. Browsers connected to the live reload endpoint reload
// after each rebuild.
package preview
