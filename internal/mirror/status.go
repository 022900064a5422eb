package mirror

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vladisnik/git-bare-sync/internal/gitrepo"
)

const (
	statusLabelSeparatorConstant      = ":"
	statusFileIndentConstant          = "  "
	statusFilePermissionsConstant     = 0o644
	statusEncodeErrorTemplateConstant = "unable to encode status report: %w"
	statusWriteErrorTemplateConstant  = "unable to write status file %s: %w"
	statusReadErrorTemplateConstant   = "unable to read status file %s: %w"
)

// StatusReport captures the outcome of one mirroring run.
type StatusReport struct {
	UpdatedAt int64          `json:"updated_at"`
	Statuses  map[string]int `json:"statuses"`
}

// StatusLabel builds the status map key for a repository without leaking its local path.
//
// The label combines the repository's base directory name with the repository
// path portion of the remote URL.
func StatusLabel(localPath string, remoteURL string) string {
	return filepath.Base(localPath) + statusLabelSeparatorConstant + gitrepo.RemotePathSuffix(remoteURL)
}

// WriteStatusReport overwrites the status file with the serialized report.
func WriteStatusReport(statusFilePath string, report StatusReport) error {
	encodedReport, encodeError := json.MarshalIndent(report, "", statusFileIndentConstant)
	if encodeError != nil {
		return fmt.Errorf(statusEncodeErrorTemplateConstant, encodeError)
	}

	if writeError := os.WriteFile(statusFilePath, encodedReport, statusFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(statusWriteErrorTemplateConstant, statusFilePath, writeError)
	}
	return nil
}

// ReadStatusFile returns the raw status file contents without reparsing them.
func ReadStatusFile(statusFilePath string) (string, error) {
	statusContents, readError := os.ReadFile(statusFilePath)
	if readError != nil {
		return "", fmt.Errorf(statusReadErrorTemplateConstant, statusFilePath, readError)
	}
	return string(statusContents), nil
}
