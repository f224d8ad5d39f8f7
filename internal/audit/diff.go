package audit

import "reflect"

// Change holds the minimal field-level difference between two entity snapshots.
// Before carries prior values for changed fields only; After carries the new
// values. A creation has an empty Before, a deletion an empty After.
type Change struct {
	Before map[string]any
	After  map[string]any
}

// Empty reports whether the change carries no recordable fields. Empty changes
// must not produce audit entries (e.g. a touch that only moved a timestamp).
func (c Change) Empty() bool {
	return len(c.Before) == 0 && len(c.After) == 0
}

// Diff computes the set of changed fields between two attribute snapshots,
// removing excluded keys from consideration entirely.
//
// An empty previous snapshot marks a creation: every non-excluded current
// field lands in After with no Before counterpart. An empty current snapshot
// marks a deletion: the full non-excluded previous state lands in Before.
func Diff(previous, current map[string]any, exclusions []string) Change {
	excluded := make(map[string]struct{}, len(exclusions))
	for _, field := range exclusions {
		excluded[field] = struct{}{}
	}

	change := Change{
		Before: make(map[string]any),
		After:  make(map[string]any),
	}

	if len(current) == 0 {
		for field, value := range previous {
			if _, skip := excluded[field]; skip {
				continue
			}
			change.Before[field] = value
		}
		return change
	}

	for field, value := range current {
		if _, skip := excluded[field]; skip {
			continue
		}

		prior, existed := previous[field]
		if !existed {
			change.After[field] = value
			continue
		}
		if !valuesEqual(prior, value) {
			change.Before[field] = prior
			change.After[field] = value
		}
	}

	return change
}

func valuesEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	return reflect.DeepEqual(a, b)
}
