package store

import "github.com/LyraHealth/auto-thunk/action"

// ActionInit is dispatched to the reducer once when a store is created so
// reducers can supply their initial state.
const ActionInit = "@@autothunk/INIT"

// Reducer computes the next state from the current state and an action.
// Reducers must not mutate state in place.
type Reducer func(state any, a action.Action) any

// CombineReducers returns a reducer over map[string]any state in which each
// key is owned by its own reducer.
func CombineReducers(reducers map[string]Reducer) Reducer {
	return func(state any, a action.Action) any {
		prev, _ := state.(map[string]any)
		next := make(map[string]any, len(reducers))
		for key, r := range reducers {
			next[key] = r(prev[key], a)
		}
		return next
	}
}
