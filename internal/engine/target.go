package engine

import "strings"

// Target is the resource kind named by the KIND token of a navigation command.
type Target int

const (
	// TargetNone means the KIND token was missing or unrecognized.
	TargetNone Target = iota
	TargetTopic
	TargetDirectory
)

// targets is the static keyword table. Keywords are matched upper-cased.
var targets = map[string]Target{
	"TOPIC":     TargetTopic,
	"DIRECTORY": TargetDirectory,
}

// ParseTarget resolves a KIND token case-insensitively.
func ParseTarget(token string) (Target, bool) {
	t, ok := targets[strings.ToUpper(token)]
	return t, ok
}

func (t Target) String() string {
	switch t {
	case TargetTopic:
		return "TOPIC"
	case TargetDirectory:
		return "DIRECTORY"
	default:
		return "NONE"
	}
}

// noun is the lower-case word used in user-facing messages.
func (t Target) noun() string {
	switch t {
	case TargetTopic:
		return "topic"
	case TargetDirectory:
		return "directory"
	default:
		return "resource"
	}
}
