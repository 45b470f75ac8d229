package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepairCountersCommand_Validate_WhenConstructedProperly_ShouldReturnNoError(t *testing.T) {
	// Arrange
	cmd := commands.NewRepairCountersCommand()

	// Act
	err := cmd.Validate()

	// Assert
	require.NoError(t, err)
}

func TestRepairCountersCommand_Validate_WhenNotConstructed_ShouldReturnError(t *testing.T) {
	// Arrange
	var cmd commands.RepairCountersCommand // zero-value command

	// Act
	err := cmd.Validate()

	// Assert
	require.Error(t, err)
	assert.Equal(t, commands.ErrRepairCountersCommandIsNotConstructed, err)
}

func TestRefreshCollectionStatusesCommand_Validate_WhenNotConstructed_ShouldReturnError(t *testing.T) {
	var cmd commands.RefreshCollectionStatusesCommand

	err := cmd.Validate()

	require.Error(t, err)
	assert.Equal(t, commands.ErrRefreshCollectionStatusesCommandIsNotConstructed, err)
}
