package utils_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vladisnik/git-bare-sync/internal/utils"
)

func TestCommandContextAccessorRoundTrip(testInstance *testing.T) {
	accessor := utils.NewCommandContextAccessor()

	decoratedContext := accessor.WithConfigurationFilePath(context.Background(), "/etc/git-bare-sync/config.yaml")
	decoratedContext = accessor.WithStatusFilePath(decoratedContext, "/var/lib/git-bare-sync/status.json")

	configurationFilePath, configurationAvailable := accessor.ConfigurationFilePath(decoratedContext)
	require.True(testInstance, configurationAvailable)
	require.Equal(testInstance, "/etc/git-bare-sync/config.yaml", configurationFilePath)

	statusFilePath, statusAvailable := accessor.StatusFilePath(decoratedContext)
	require.True(testInstance, statusAvailable)
	require.Equal(testInstance, "/var/lib/git-bare-sync/status.json", statusFilePath)
}

func TestCommandContextAccessorMissingValues(testInstance *testing.T) {
	accessor := utils.NewCommandContextAccessor()

	_, configurationAvailable := accessor.ConfigurationFilePath(context.Background())
	require.False(testInstance, configurationAvailable)

	_, statusAvailable := accessor.StatusFilePath(nil)
	require.False(testInstance, statusAvailable)

	emptyValueContext := accessor.WithStatusFilePath(context.Background(), "")
	_, emptyAvailable := accessor.StatusFilePath(emptyValueContext)
	require.False(testInstance, emptyAvailable)
}
