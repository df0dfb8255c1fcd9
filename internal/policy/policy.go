// Package policy maps subscription plans to the feature limits enforced by
// the task store and handlers. It holds the plan tables only; billing and
// plan changes live with the external subscription collaborator.
package policy

import (
	"sendloop-api/internal/models"
)

// Plan is the subscription tier.
type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// Flags are the limits unlocked by a plan.
type Flags struct {
	MaxActiveTasks            int  `json:"maxActiveTasks"`
	VisualTypes               int  `json:"visualTypes"`
	NotificationCustomization bool `json:"notificationCustomization"`
	CloudBackup               bool `json:"cloudBackup"`
	CSVExport                 bool `json:"csvExport"`
	ContinueTokensPerCycle    int  `json:"continueTokensPerCycle"`
}

// FlagsFor returns the limits for a plan. Unknown plan strings get the free
// limits, so the function is total over any input.
func FlagsFor(plan Plan) Flags {
	switch plan {
	case PlanPro:
		return Flags{
			MaxActiveTasks:            8, // practical cap standing in for "unlimited"
			VisualTypes:               4,
			NotificationCustomization: true,
			CloudBackup:               true,
			CSVExport:                 true,
			ContinueTokensPerCycle:    3,
		}
	default:
		return Flags{
			MaxActiveTasks:            1,
			VisualTypes:               1, // tree only
			NotificationCustomization: false,
			CloudBackup:               false,
			CSVExport:                 false,
			ContinueTokensPerCycle:    1,
		}
	}
}

// CanCreateTask reports whether a plan allows another active task on top of
// the current count.
func CanCreateTask(plan Plan, activeCount int) bool {
	return activeCount < FlagsFor(plan).MaxActiveTasks
}

// VisualTypeAllowed reports whether a plan has unlocked the visual type.
// Visual types unlock in persisted-value order, so a plan with N types
// unlocks values 0..N-1.
func VisualTypeAllowed(plan Plan, v models.VisualType) bool {
	return v.Known() && int(v) < FlagsFor(plan).VisualTypes
}
