package gitrepo

import (
	"strings"
)

const (
	sshUserDelimiterConstant = "@"
	sshPathDelimiterConstant = ":"
)

// BuildSSHBaseURL assembles the scp-style prefix shared by every repository of one remote server.
func BuildSSHBaseURL(remoteUser string, remoteServer string) string {
	return remoteUser + sshUserDelimiterConstant + remoteServer + sshPathDelimiterConstant
}

// RemotePathSuffix extracts the repository path portion of an scp-style remote URL.
//
// The suffix is everything after the last ':'; URLs without a ':' are returned
// unchanged so plain paths remain usable as status labels.
func RemotePathSuffix(remoteURL string) string {
	delimiterIndex := strings.LastIndex(remoteURL, sshPathDelimiterConstant)
	if delimiterIndex == -1 {
		return remoteURL
	}
	return remoteURL[delimiterIndex+1:]
}
