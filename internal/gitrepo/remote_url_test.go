package gitrepo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vladisnik/git-bare-sync/internal/gitrepo"
)

func TestBuildSSHBaseURL(testInstance *testing.T) {
	baseURL := gitrepo.BuildSSHBaseURL("git", "host.example.com")
	require.Equal(testInstance, "git@host.example.com:", baseURL)
}

func TestRemotePathSuffix(testInstance *testing.T) {
	testCases := []struct {
		name           string
		remoteURL      string
		expectedSuffix string
	}{
		{
			name:           "scp_style_url",
			remoteURL:      "git@host:team/app.git",
			expectedSuffix: "team/app.git",
		},
		{
			name:           "multiple_delimiters_uses_last",
			remoteURL:      "git@host:nested:team/app.git",
			expectedSuffix: "team/app.git",
		},
		{
			name:           "plain_path_without_delimiter",
			remoteURL:      "team/app.git",
			expectedSuffix: "team/app.git",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedSuffix, gitrepo.RemotePathSuffix(testCase.remoteURL))
		})
	}
}
