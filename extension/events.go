// events.go defines the notifications fired after the tree changes.
//
// Events are observations, not approvals: a handler runs after the change
// is committed and cannot undo or block it.

package extension

// EventType identifies the kind of event.
type EventType string

const (
	EventKeyCreate   EventType = "key:create"
	EventKeyDelete   EventType = "key:delete"
	EventValueSet    EventType = "value:set"
	EventValueDelete EventType = "value:delete"
)

// Event is the base interface for all events.
type Event interface {
	EventType() EventType
	EventPath() string
}

// KeyEvent is fired after a key is created or removed. Removed counts the
// keys and values that went with it.
type KeyEvent struct {
	Path    string
	Author  string
	Created bool
	Removed int64
}

func (e KeyEvent) EventType() EventType {
	if e.Created {
		return EventKeyCreate
	}
	return EventKeyDelete
}
func (e KeyEvent) EventPath() string { return e.Path }

// ValueEvent is fired after a value is set or removed. An empty Name is the
// default value.
type ValueEvent struct {
	Path    string
	Name    string
	Type    string
	Data    string
	Author  string
	Deleted bool
}

func (e ValueEvent) EventType() EventType {
	if e.Deleted {
		return EventValueDelete
	}
	return EventValueSet
}
func (e ValueEvent) EventPath() string { return e.Path }

// EventHandler is implemented by extensions that want to receive events.
type EventHandler interface {
	HandleEvent(ctx Context, e Event) error
}
