package mirror

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vladisnik/git-bare-sync/internal/gitrepo"
)

const (
	repoRootManifestFieldConstant          = "repo_root"
	remoteUserManifestFieldConstant        = "remote_user"
	remoteServerManifestFieldConstant      = "remote_server"
	reposManifestFieldConstant             = "repos"
	metricsManifestFieldConstant           = "metrics"
	manifestReadErrorTemplateConstant      = "unable to read configuration file %s: %w"
	manifestParseErrorTemplateConstant     = "got error while parsing configuration file: %w"
	missingManifestFieldTemplateConstant   = "missing config field %s"
	missingDirectoryTemplateConstant       = "directory not found or permission denied: %s"
	malformedRepoGroupTemplateConstant     = "config field repos -> %s must hold a list of repository mappings"
	malformedReposFieldMessageConstant     = "config field repos must hold a mapping of repository groups"
	missingLocalRepoFlagMessageConstant    = "needs arguments --local-repo and --remote-repo when run without a configuration file"
	localRepositoryMissingTemplateConstant = "directory not found or permission denied, of git repository: %s"
)

// Manifest mirrors the YAML configuration file schema.
//
// The repos field stays a yaml.Node so group and entry order are preserved;
// decoding it into a map would lose the manifest ordering.
type Manifest struct {
	RepoRoot     string    `yaml:"repo_root"`
	RemoteUser   string    `yaml:"remote_user"`
	RemoteServer string    `yaml:"remote_server"`
	Repos        yaml.Node `yaml:"repos"`
	Metrics      string    `yaml:"metrics"`
}

// ResolvedManifest carries the ordered repository targets and the status file path.
type ResolvedManifest struct {
	Targets        []RepoTarget
	StatusFilePath string
}

// LoadManifest reads, parses, and validates the manifest at the provided path.
//
// Every referenced directory must exist; a missing directory aborts the whole
// run naming the offending path.
func LoadManifest(manifestPath string) (ResolvedManifest, error) {
	manifestContents, readError := os.ReadFile(manifestPath)
	if readError != nil {
		return ResolvedManifest{}, fmt.Errorf(manifestReadErrorTemplateConstant, manifestPath, readError)
	}

	manifest := Manifest{}
	if parseError := yaml.Unmarshal(manifestContents, &manifest); parseError != nil {
		return ResolvedManifest{}, fmt.Errorf(manifestParseErrorTemplateConstant, parseError)
	}

	return resolveManifest(manifest)
}

func resolveManifest(manifest Manifest) (ResolvedManifest, error) {
	if len(manifest.RepoRoot) == 0 {
		return ResolvedManifest{}, fmt.Errorf(missingManifestFieldTemplateConstant, repoRootManifestFieldConstant)
	}
	if len(manifest.RemoteUser) == 0 {
		return ResolvedManifest{}, fmt.Errorf(missingManifestFieldTemplateConstant, remoteUserManifestFieldConstant)
	}
	if len(manifest.RemoteServer) == 0 {
		return ResolvedManifest{}, fmt.Errorf(missingManifestFieldTemplateConstant, remoteServerManifestFieldConstant)
	}
	if manifest.Repos.Kind == 0 {
		return ResolvedManifest{}, fmt.Errorf(missingManifestFieldTemplateConstant, reposManifestFieldConstant)
	}
	if manifest.Repos.Kind != yaml.MappingNode {
		return ResolvedManifest{}, errors.New(malformedReposFieldMessageConstant)
	}
	if len(manifest.Metrics) == 0 {
		return ResolvedManifest{}, fmt.Errorf(missingManifestFieldTemplateConstant, metricsManifestFieldConstant)
	}

	if directoryError := requireDirectory(manifest.RepoRoot); directoryError != nil {
		return ResolvedManifest{}, directoryError
	}

	remoteBaseURL := gitrepo.BuildSSHBaseURL(manifest.RemoteUser, manifest.RemoteServer)

	targets := []RepoTarget{}
	groupNodes := manifest.Repos.Content
	for groupIndex := 0; groupIndex+1 < len(groupNodes); groupIndex += 2 {
		groupKeyNode := groupNodes[groupIndex]
		groupValueNode := groupNodes[groupIndex+1]

		if groupValueNode.Tag == "!!null" {
			continue
		}
		if groupValueNode.Kind != yaml.SequenceNode {
			return ResolvedManifest{}, fmt.Errorf(malformedRepoGroupTemplateConstant, groupKeyNode.Value)
		}

		groupPath := filepath.Join(manifest.RepoRoot, groupKeyNode.Value)
		if directoryError := requireDirectory(groupPath); directoryError != nil {
			return ResolvedManifest{}, directoryError
		}

		for _, entryNode := range groupValueNode.Content {
			if entryNode.Kind != yaml.MappingNode {
				return ResolvedManifest{}, fmt.Errorf(malformedRepoGroupTemplateConstant, groupKeyNode.Value)
			}
			entryPairs := entryNode.Content
			for entryIndex := 0; entryIndex+1 < len(entryPairs); entryIndex += 2 {
				repositoryPath := filepath.Join(groupPath, entryPairs[entryIndex].Value)
				if directoryError := requireDirectory(repositoryPath); directoryError != nil {
					return ResolvedManifest{}, directoryError
				}
				targets = append(targets, RepoTarget{
					LocalPath: repositoryPath,
					RemoteURL: remoteBaseURL + entryPairs[entryIndex+1].Value,
				})
			}
		}
	}

	return ResolvedManifest{Targets: targets, StatusFilePath: manifest.Metrics}, nil
}

// ResolveCLITarget validates the flag-provided repository pair used without a manifest.
func ResolveCLITarget(localRepositoryPath string, remoteRepositoryURL string) (RepoTarget, error) {
	if len(localRepositoryPath) == 0 || len(remoteRepositoryURL) == 0 {
		return RepoTarget{}, errors.New(missingLocalRepoFlagMessageConstant)
	}

	absoluteRepositoryPath, absoluteError := filepath.Abs(localRepositoryPath)
	if absoluteError != nil {
		return RepoTarget{}, fmt.Errorf(localRepositoryMissingTemplateConstant, localRepositoryPath)
	}

	if directoryError := requireRepositoryDirectory(absoluteRepositoryPath); directoryError != nil {
		return RepoTarget{}, directoryError
	}

	return RepoTarget{LocalPath: absoluteRepositoryPath, RemoteURL: remoteRepositoryURL}, nil
}

func requireDirectory(directoryPath string) error {
	directoryInfo, statError := os.Stat(directoryPath)
	if statError != nil || !directoryInfo.IsDir() {
		return fmt.Errorf(missingDirectoryTemplateConstant, directoryPath)
	}
	return nil
}

func requireRepositoryDirectory(repositoryPath string) error {
	directoryInfo, statError := os.Stat(repositoryPath)
	if statError != nil || !directoryInfo.IsDir() {
		return fmt.Errorf(localRepositoryMissingTemplateConstant, repositoryPath)
	}
	return nil
}
