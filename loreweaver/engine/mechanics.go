package engine

import (
	"reflect"

	"github.com/loreweaver-bot/loreweaver/loreweaver/database/models"
)

// MatchMechanics reports whether an event structurally satisfies a step's
// required-mechanics descriptor. The event type must match exactly; the
// details subset, if present, must appear in the event details with equal
// values. Extra event detail keys are ignored. There is no coercion between
// JSON types: a string "10" never matches the number 10.
func MatchMechanics(event *models.GameEvent, required models.RequiredMechanics) bool {
	if event == nil || required.EventType != event.EventType {
		return false
	}
	if len(required.DetailsSubset) == 0 {
		return true
	}
	return detailsSubset(required.DetailsSubset, event.Details)
}

// detailsSubset checks that every key of want exists in have with an equal
// value. Nested objects are compared by the same subset rule; everything
// else requires deep equality.
func detailsSubset(want, have map[string]any) bool {
	for key, wantVal := range want {
		haveVal, ok := have[key]
		if !ok {
			return false
		}
		wantMap, wantIsMap := wantVal.(map[string]any)
		haveMap, haveIsMap := haveVal.(map[string]any)
		if wantIsMap && haveIsMap {
			if !detailsSubset(wantMap, haveMap) {
				return false
			}
			continue
		}
		if wantIsMap != haveIsMap {
			return false
		}
		if !reflect.DeepEqual(wantVal, haveVal) {
			return false
		}
	}
	return true
}
