// Package workspace locates and initializes kssg workspaces.
//
// A workspace is the directory holding kssg.json. Source and output paths in
// the configuration resolve relative to it.
package workspace
