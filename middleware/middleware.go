package middleware

import (
	"strings"

	"github.com/LyraHealth/auto-thunk/thunk"
)

// unitInfo describes a dispatched unit for logs, spans and metrics.
type unitInfo struct {
	kind string
	name string
}

// describe classifies unit. name is the action type for transitions, the
// method and URL for descriptors, and empty otherwise.
func describe(unit any) unitInfo {
	u := thunk.Classify(unit)
	info := unitInfo{kind: u.Kind.String()}
	switch u.Kind {
	case thunk.KindTransition:
		info.name = u.Transition.Type
	case thunk.KindDescriptor:
		if u.Descriptor == nil || u.Descriptor.Request == nil {
			break
		}
		if r, err := u.Descriptor.Request.Normalize(); err == nil {
			info.name = strings.ToUpper(r.Method) + " " + r.URL
		}
	}
	return info
}
