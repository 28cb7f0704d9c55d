package reconcile

import "github.com/charllys777/appsaloes/internal/model"

// Plan is one collection's diff between the edited state a dashboard
// submits and what is persisted. The three sets are disjoint.
type Plan[T any] struct {
	Inserts []T
	Updates []T
	Deletes []string
}

// BuildPlan partitions edited items by their identifier: pending IDs
// become inserts, persisted IDs become updates, and persisted rows the
// edit no longer mentions become deletes. Applying the same edited
// state twice yields an empty delete set and no new inserts beyond the
// first run's, so the sync is idempotent.
func BuildPlan[T any](edited []T, persistedIDs []string, id func(T) model.EntityID) Plan[T] {
	var plan Plan[T]

	kept := make(map[string]bool, len(edited))
	for _, item := range edited {
		eid := id(item)
		if eid.Pending() {
			plan.Inserts = append(plan.Inserts, item)
			continue
		}
		kept[eid.Value()] = true
		plan.Updates = append(plan.Updates, item)
	}

	for _, pid := range persistedIDs {
		if !kept[pid] {
			plan.Deletes = append(plan.Deletes, pid)
		}
	}
	return plan
}
