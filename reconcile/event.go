package reconcile

import "fmt"

// Kind classifies a catalog change.
type Kind string

const (
	Added            Kind = "added"
	Removed          Kind = "removed"
	Updated          Kind = "updated"
	ReReleased       Kind = "re-released"
	StreamCreated    Kind = "stream created"
	StreamRemoved    Kind = "stream removed"
	SubtitlesAdded   Kind = "subtitles added"
	SubtitlesRemoved Kind = "subtitles removed"
)

// Event is one change between the persisted and the fresh catalog.
type Event struct {
	ID   string
	Kind Kind
	// Field is the changed video field for Updated and the language for subtitle events.
	Field string
	From  string
	To    string
}

// String renders the event for the operator log.
func (e Event) String() string {
	switch e.Kind {
	case Added, Removed:
		return fmt.Sprintf("%s %s", e.ID, e.Kind)
	case Updated:
		return fmt.Sprintf("%s's %s changed from %q to %q", e.ID, e.Field, e.From, e.To)
	case ReReleased:
		return fmt.Sprintf("%s's stream changed from %s to %s", e.ID, e.From, e.To)
	case StreamCreated:
		return fmt.Sprintf("%s's stream created at %s", e.ID, e.To)
	case StreamRemoved:
		return fmt.Sprintf("%s's stream removed from %s", e.ID, e.From)
	case SubtitlesAdded, SubtitlesRemoved:
		return fmt.Sprintf("%s's %s %s", e.ID, e.Field, e.Kind)
	default:
		return fmt.Sprintf("%s %s", e.ID, e.Kind)
	}
}
