// Package wizard implements the interactive configure command that creates or updates host profiles.
package wizard
