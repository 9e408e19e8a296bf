// Package hosts provides the list-hosts and delete-host commands for managing stored host profiles.
package hosts
