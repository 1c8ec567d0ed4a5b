package chat

// sessionStartedMsg is sent when profile resolution finishes.
type sessionStartedMsg struct {
	Err error
}

// turnDoneMsg is sent when a submitted turn resolves. Accepted is false
// when the controller rejected the message.
type turnDoneMsg struct {
	Accepted bool
}
