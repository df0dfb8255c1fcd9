package stage

import (
	"testing"

	"sendloop-api/internal/models"

	"github.com/stretchr/testify/require"
)

func TestTreeBoundaries(t *testing.T) {
	cases := []struct {
		percent int
		id      string
	}{
		{0, "tree-stage-seed"},
		{10, "tree-stage-seed"},
		{11, "tree-stage-sprout"},
		{30, "tree-stage-sprout"},
		{31, "tree-stage-young"},
		{60, "tree-stage-young"},
		{61, "tree-stage-mature"},
		{90, "tree-stage-mature"},
		{91, "tree-stage-blooming"},
		{100, "tree-stage-blooming"},
	}
	for _, tc := range cases {
		got := ForProgress(models.VisualTree, tc.percent)
		require.Equal(t, tc.id, got.ID, "percent %d", tc.percent)
	}
}

func TestGardenBoundaries(t *testing.T) {
	require.Equal(t, "garden-stage-soil", ForProgress(models.VisualGarden, 30).ID)
	require.Equal(t, "garden-stage-single", ForProgress(models.VisualGarden, 31).ID)
	require.Equal(t, "garden-stage-single", ForProgress(models.VisualGarden, 70).ID)
	require.Equal(t, "garden-stage-full", ForProgress(models.VisualGarden, 71).ID)
}

func TestPetBoundaries(t *testing.T) {
	require.Equal(t, "pet-stage-egg", ForProgress(models.VisualPet, 0).ID)
	require.Equal(t, "pet-stage-hatching", ForProgress(models.VisualPet, 31).ID)
	require.Equal(t, "pet-stage-adult", ForProgress(models.VisualPet, 100).ID)
}

func TestStarsSingleStage(t *testing.T) {
	for _, p := range []int{0, 50, 100} {
		require.Equal(t, "progress-bar-stage", ForProgress(models.VisualStars, p).ID)
	}
}

func TestOutOfRangePercentClamped(t *testing.T) {
	require.Equal(t, "tree-stage-seed", ForProgress(models.VisualTree, -20).ID)
	require.Equal(t, "tree-stage-blooming", ForProgress(models.VisualTree, 140).ID)
}

func TestUnknownVisualTypeFallsBackToTree(t *testing.T) {
	require.Equal(t, "tree-stage-seed", ForProgress(models.VisualType(99), 5).ID)
	require.Equal(t, "tree-stage-blooming", ForProgress(models.VisualType(-1), 95).ID)
}
