// Package stage maps a completion percentage onto the discrete growth stage
// a client renders. Mapping is total: out-of-range percentages are clamped
// and an unrecognized visual type falls back to the tree.
package stage

import (
	"sendloop-api/internal/models"
)

// Stage is one bucket of a visual type's growth progression.
type Stage struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ForProgress returns the stage for a visual type at the given completion
// percentage. Band boundaries belong to the lower stage (30 is still the
// second tree stage, 31 is the third).
func ForProgress(visualType models.VisualType, percent int) Stage {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	switch visualType {
	case models.VisualGarden:
		return gardenStage(percent)
	case models.VisualPet:
		return petStage(percent)
	case models.VisualStars:
		return Stage{ID: "progress-bar-stage", Name: "Progress bar"}
	default:
		return treeStage(percent)
	}
}

// The tree is the richest visual and carries five bands; garden and pet have
// three each. Band counts are part of the product design, keep them distinct.

func treeStage(percent int) Stage {
	switch {
	case percent <= 10:
		return Stage{ID: "tree-stage-seed", Name: "Seed"}
	case percent <= 30:
		return Stage{ID: "tree-stage-sprout", Name: "Sprout"}
	case percent <= 60:
		return Stage{ID: "tree-stage-young", Name: "Young tree"}
	case percent <= 90:
		return Stage{ID: "tree-stage-mature", Name: "Mature tree"}
	default:
		return Stage{ID: "tree-stage-blooming", Name: "Blooming tree"}
	}
}

func gardenStage(percent int) Stage {
	switch {
	case percent <= 30:
		return Stage{ID: "garden-stage-soil", Name: "Soil"}
	case percent <= 70:
		return Stage{ID: "garden-stage-single", Name: "Single flower"}
	default:
		return Stage{ID: "garden-stage-full", Name: "Full garden"}
	}
}

func petStage(percent int) Stage {
	switch {
	case percent <= 30:
		return Stage{ID: "pet-stage-egg", Name: "Egg"}
	case percent <= 70:
		return Stage{ID: "pet-stage-hatching", Name: "Hatching"}
	default:
		return Stage{ID: "pet-stage-adult", Name: "Adult pet"}
	}
}
