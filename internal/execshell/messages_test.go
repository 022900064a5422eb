package execshell

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDescribeCommandForFetchNamesRemoteAndDirectory(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"fetch", "--prune", "origin", "+refs/heads/*:refs/heads/*"},
			WorkingDirectory: "/srv/git/app.git",
		},
	}

	message := formatter.DescribeCommand(command)

	require.Equal(t, "Fetching origin in /srv/git/app.git", message)
}

func TestDescribeCommandForRemoteCreationNamesURL(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"remote", "add", "origin", "git@host:team/app.git"},
			WorkingDirectory: "/srv/git/app.git",
		},
	}

	message := formatter.DescribeCommand(command)

	require.Equal(t, "Creating origin remote in /srv/git/app.git pointing at git@host:team/app.git", message)
}

func TestDescribeCommandForRemoteListingUsesDirectory(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"remote"},
			WorkingDirectory: "/srv/git/app.git",
		},
	}

	message := formatter.DescribeCommand(command)

	require.Equal(t, "Listing remotes of /srv/git/app.git", message)
}
