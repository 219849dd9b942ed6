// Package git reads the revision of the repository holding a site workspace.
// Builds expose it to templates so a footer can name the commit it was
// rendered from.
package git
