package tui

// stepMsg reports that one engine step finished: a match was appended or
// the session ended.
type stepMsg struct {
	err error
}

// savedMsg reports a result file write.
type savedMsg struct {
	path string
	n    int
	err  error
}

// startMsg starts a find for the text the dialog opened with.
type startMsg struct{}
