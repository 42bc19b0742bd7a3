package match3

// applyObjectiveEvent advances every unsatisfied Objective whose layer and
// element match ev, emitting ObjectiveProgress through inner for each one
// that moves (spec.md §3, §4.9). Ground objectives only count a cell once
// its ground overlay has been fully worn away (Remain == 0).
func applyObjectiveEvent(state *GameState, ev Event, inner EventCollector) {
	for i := 0; i < state.ActiveObjCount; i++ {
		obj := &state.Objectives[i]
		if obj.Satisfied() {
			continue
		}

		matched := false
		switch obj.Layer {
		case ObjectiveTile:
			matched = ev.Type == EventTileDestroyed && int32(ev.Kind) == obj.Element
		case ObjectiveCover:
			matched = ev.Type == EventCoverDestroyed && int32(ev.CoverK) == obj.Element
		case ObjectiveGround:
			matched = ev.Type == EventGroundDamaged && ev.Remain == 0 && int32(ev.GroundK) == obj.Element
		}
		if !matched {
			continue
		}

		obj.Current++
		inner.Emit(Event{Type: EventObjectiveProgress, ObjectiveIndex: i, Current: obj.Current})
	}
}

// AllObjectivesSatisfied reports whether every active objective has reached
// its target. A level with no active objectives is never "complete" this
// way — it has nothing to complete.
func AllObjectivesSatisfied(state *GameState) bool {
	if state.ActiveObjCount == 0 {
		return false
	}
	for i := 0; i < state.ActiveObjCount; i++ {
		if !state.Objectives[i].Satisfied() {
			return false
		}
	}
	return true
}
