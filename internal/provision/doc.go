// Package provision creates bare Git repositories on remote hosts over SSH or on the local filesystem.
//
// A request flows through the Resolver, which merges command-line overrides
// with the selected host profile, into BuildRemoteCommand, which produces one
// shell command, and through the shell executor into Interpret, which turns
// the single execution outcome into a Report or a classified error.
package provision
