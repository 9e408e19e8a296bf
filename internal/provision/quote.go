package provision

import "strings"

const (
	emptyQuotedWordConstant       = "''"
	singleQuoteConstant           = "'"
	escapedSingleQuoteConstant    = `'\''`
	remoteHomeReferenceConstant   = `"$HOME"`
	homeShortcutConstant          = "~"
	homeShortcutWithSlashConstant = "~/"
)

// Quote renders value as a single POSIX shell word.
//
// Words made only of [A-Za-z0-9-_./@:,+=] are returned unchanged.
func Quote(value string) string {
	if len(value) == 0 {
		return emptyQuotedWordConstant
	}
	if strings.IndexFunc(value, requiresQuoting) == -1 {
		return value
	}
	return singleQuoteConstant + strings.ReplaceAll(value, singleQuoteConstant, escapedSingleQuoteConstant) + singleQuoteConstant
}

// quoteRemotePath quotes a path for the remote shell, leaving a leading ~ to expand as $HOME there.
func quoteRemotePath(remotePath string) string {
	switch {
	case remotePath == homeShortcutConstant:
		return remoteHomeReferenceConstant
	case strings.HasPrefix(remotePath, homeShortcutWithSlashConstant):
		return remoteHomeReferenceConstant + Quote(strings.TrimPrefix(remotePath, homeShortcutConstant))
	default:
		return Quote(remotePath)
	}
}

func requiresQuoting(character rune) bool {
	switch {
	case character >= 'a' && character <= 'z':
		return false
	case character >= 'A' && character <= 'Z':
		return false
	case character >= '0' && character <= '9':
		return false
	}
	switch character {
	case '-', '_', '.', '/', '@', ':', ',', '+', '=':
		return false
	}
	return true
}
