package policy

import (
	"testing"

	"sendloop-api/internal/models"

	"github.com/stretchr/testify/require"
)

func TestFlagsForFree(t *testing.T) {
	flags := FlagsFor(PlanFree)
	require.Equal(t, 1, flags.MaxActiveTasks)
	require.Equal(t, 1, flags.VisualTypes)
	require.False(t, flags.NotificationCustomization)
	require.False(t, flags.CloudBackup)
	require.False(t, flags.CSVExport)
	require.Equal(t, 1, flags.ContinueTokensPerCycle)
}

func TestFlagsForPro(t *testing.T) {
	flags := FlagsFor(PlanPro)
	require.Equal(t, 8, flags.MaxActiveTasks)
	require.Equal(t, 4, flags.VisualTypes)
	require.True(t, flags.NotificationCustomization)
	require.True(t, flags.CloudBackup)
	require.True(t, flags.CSVExport)
	require.Equal(t, 3, flags.ContinueTokensPerCycle)
}

func TestFlagsForUnknownPlanDefaultsToFree(t *testing.T) {
	require.Equal(t, FlagsFor(PlanFree), FlagsFor(Plan("enterprise")))
	require.Equal(t, FlagsFor(PlanFree), FlagsFor(Plan("")))
}

func TestCanCreateTask(t *testing.T) {
	require.True(t, CanCreateTask(PlanFree, 0))
	require.False(t, CanCreateTask(PlanFree, 1))
	require.True(t, CanCreateTask(PlanPro, 1))
	require.True(t, CanCreateTask(PlanPro, 7))
	require.False(t, CanCreateTask(PlanPro, 8))
}

func TestVisualTypeAllowed(t *testing.T) {
	require.True(t, VisualTypeAllowed(PlanFree, models.VisualTree))
	require.False(t, VisualTypeAllowed(PlanFree, models.VisualGarden))
	require.True(t, VisualTypeAllowed(PlanPro, models.VisualStars))
	require.False(t, VisualTypeAllowed(PlanPro, models.VisualType(9)))
}
