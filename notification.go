package reactorfx

// NotificationKind discriminates the three signals a sequence can carry.
type NotificationKind int

const (
	OnNext NotificationKind = iota
	OnError
	OnComplete
)

// Notification is a single signal flowing through a sequence. OnError and
// OnComplete are terminal; nothing follows them on the same subscription.
type Notification struct {
	kind NotificationKind
	body interface{}
}

// Next wraps a value emission.
func Next(value interface{}) Notification {
	return Notification{kind: OnNext, body: value}
}

// Fail wraps a terminal error.
func Fail(err error) Notification {
	return Notification{kind: OnError, body: err}
}

// Complete is the terminal signal for normal completion.
func Complete() Notification {
	return Notification{kind: OnComplete}
}

func (n Notification) Kind() NotificationKind {
	return n.kind
}

func (n Notification) Value() interface{} {
	return n.body
}

func (n Notification) Err() error {
	if err, ok := n.body.(error); ok {
		return err
	}
	return nil
}

// IsTerminal reports whether no further notifications may follow this one.
func (n Notification) IsTerminal() bool {
	return n.kind != OnNext
}
