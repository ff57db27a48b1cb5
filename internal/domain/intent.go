package domain

// IntentType classifies what the user wants during a cooking session.
type IntentType int

const (
	IntentUnrecognized IntentType = iota
	IntentNext
	IntentRepeat
	IntentIngredients
	IntentHelp
	IntentQuestion // free-form question sent to the AI assistant
	IntentStop
)

// String returns a human-readable intent type.
func (i IntentType) String() string {
	switch i {
	case IntentNext:
		return "next"
	case IntentRepeat:
		return "repeat"
	case IntentIngredients:
		return "ingredients"
	case IntentHelp:
		return "help"
	case IntentQuestion:
		return "question"
	case IntentStop:
		return "stop"
	default:
		return "unrecognized"
	}
}

// Intent represents a classified user utterance.
type Intent struct {
	Type    IntentType
	Payload string // the literal utterance, carried for Question
}

// intentNames maps wire names to IntentType values.
var intentNames = map[string]IntentType{
	"next":         IntentNext,
	"repeat":       IntentRepeat,
	"ingredients":  IntentIngredients,
	"help":         IntentHelp,
	"question":     IntentQuestion,
	"stop":         IntentStop,
	"unrecognized": IntentUnrecognized,
}

// IntentFromString converts an intent name to an IntentType.
// Returns IntentUnrecognized for unknown names.
func IntentFromString(name string) IntentType {
	if t, ok := intentNames[name]; ok {
		return t
	}
	return IntentUnrecognized
}
