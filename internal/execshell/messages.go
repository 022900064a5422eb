package execshell

import (
	"fmt"
	"strings"
)

const (
	commandLabelSeparatorConstant          = " "
	workingDirectorySuffixTemplateConstant = " (in %s)"
	emptyStringConstant                    = ""
	defaultWorkingDirectoryLabelConstant   = "current directory"
	fallbackUnknownValueLabelConstant      = "unknown"
)

const (
	gitRevParseSubcommandNameConstant        = "rev-parse"
	gitRemoteSubcommandNameConstant          = "remote"
	gitRemoteGetURLSubcommandNameConstant    = "get-url"
	gitRemoteAddSubcommandNameConstant       = "add"
	gitRemoteRemoveSubcommandNameConstant    = "remove"
	gitFetchSubcommandNameConstant           = "fetch"
	gitRepositoryCheckTemplateConstant       = "Verifying %s is a git repository"
	gitRemoteListTemplateConstant            = "Listing remotes of %s"
	gitRemoteLookupTemplateConstant          = "Reading %s remote URL in %s"
	gitRemoteCreationTemplateConstant        = "Creating %s remote in %s pointing at %s"
	gitRemoteDeletionTemplateConstant        = "Deleting %s remote in %s"
	gitFetchTemplateConstant                 = "Fetching %s in %s"
	gitGenericCommandLabelTemplateConstant   = "Running %s"
	commandLabelWithDirectoryFormatConstant  = "%s%s"
	remoteSubcommandMinimumArgumentsConstant = 2
)

// CommandMessageFormatter builds human-readable descriptions of git invocations.
type CommandMessageFormatter struct{}

// FormatCommandLabel renders the executable name, its arguments, and the working directory.
func (formatter CommandMessageFormatter) FormatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = commandLabel + commandLabelSeparatorConstant + strings.Join(command.Details.Arguments, commandLabelSeparatorConstant)
	}
	return fmt.Sprintf(commandLabelWithDirectoryFormatConstant, commandLabel, formatter.formatWorkingDirectorySuffix(command))
}

// DescribeCommand builds a human-oriented message naming the git operation being performed.
func (formatter CommandMessageFormatter) DescribeCommand(command ShellCommand) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	arguments := command.Details.Arguments
	if command.Name != CommandGit || len(arguments) == 0 {
		return fmt.Sprintf(gitGenericCommandLabelTemplateConstant, formatter.FormatCommandLabel(command))
	}

	subcommand := strings.TrimSpace(arguments[0])
	switch subcommand {
	case gitRevParseSubcommandNameConstant:
		return fmt.Sprintf(gitRepositoryCheckTemplateConstant, workingDirectory)
	case gitRemoteSubcommandNameConstant:
		return formatter.describeRemoteSubcommand(arguments, workingDirectory, command)
	case gitFetchSubcommandNameConstant:
		remoteName := formatter.firstNonFlagArgument(arguments[1:])
		return fmt.Sprintf(gitFetchTemplateConstant, formatter.ensureValue(remoteName), workingDirectory)
	default:
		return fmt.Sprintf(gitGenericCommandLabelTemplateConstant, formatter.FormatCommandLabel(command))
	}
}

func (formatter CommandMessageFormatter) describeRemoteSubcommand(arguments []string, workingDirectory string, command ShellCommand) string {
	if len(arguments) < remoteSubcommandMinimumArgumentsConstant {
		return fmt.Sprintf(gitRemoteListTemplateConstant, workingDirectory)
	}

	operation := strings.TrimSpace(arguments[1])
	remoteName := formatter.ensureValue(formatter.argumentAtIndex(arguments, 2))
	switch operation {
	case gitRemoteGetURLSubcommandNameConstant:
		return fmt.Sprintf(gitRemoteLookupTemplateConstant, remoteName, workingDirectory)
	case gitRemoteAddSubcommandNameConstant:
		remoteURL := formatter.ensureValue(formatter.argumentAtIndex(arguments, 3))
		return fmt.Sprintf(gitRemoteCreationTemplateConstant, remoteName, workingDirectory, remoteURL)
	case gitRemoteRemoveSubcommandNameConstant:
		return fmt.Sprintf(gitRemoteDeletionTemplateConstant, remoteName, workingDirectory)
	default:
		return fmt.Sprintf(gitGenericCommandLabelTemplateConstant, formatter.FormatCommandLabel(command))
	}
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index >= 0 && index < len(arguments) {
		return arguments[index]
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) firstNonFlagArgument(arguments []string) string {
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 {
			continue
		}
		if strings.HasPrefix(trimmed, "-") {
			continue
		}
		return trimmed
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}
