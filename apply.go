package ragchat

// FailureNotice replaces the visible answer when an exchange fails.
const FailureNotice = "Sorry, I encountered an error processing your request."

// CancelledNotice replaces the visible answer when the user cancels.
const CancelledNotice = "Request cancelled."

// Greeting is the assistant message a new chat session starts with.
const Greeting = "Hello! I am your Traffic Law Assistant. How can I help you today?"

// Apply folds one stream event into msg and returns the next value. msg is
// not modified; the comparison tracks are copied before any write.
//
// Once msg is completed or failed every event is ignored. Without
// comparison tracks all chunks append to Content whatever their mode.
func Apply(msg Message, evt Event) Message {
	if msg.Status.Terminal() {
		return msg
	}
	switch e := evt.(type) {
	case EventChunk:
		if msg.Comparison != nil {
			msg.Comparison = cloneComparison(msg.Comparison)
			if tr := msg.Comparison.Track(e.Mode); tr != nil {
				tr.Content += e.Text
				tr.Started = true
			}
		} else {
			msg.Content += e.Text
		}
		msg.Status = StatusStreaming
	case EventStart:
		if msg.Comparison != nil {
			msg.Comparison = cloneComparison(msg.Comparison)
			if tr := msg.Comparison.Track(e.Mode); tr != nil {
				tr.Started = true
			}
		}
		msg.Status = StatusStreaming
	case EventSources:
		if msg.Comparison != nil {
			tr := msg.Comparison.Track(e.Mode)
			if tr != nil && tr.Sources == nil {
				msg.Comparison = cloneComparison(msg.Comparison)
				msg.Comparison.Track(e.Mode).Sources = cloneReferences(e.Sources)
			}
		} else if msg.Sources == nil {
			msg.Sources = cloneReferences(e.Sources)
		}
		msg.Status = StatusStreaming
	case EventError:
		return Fail(msg, FailureProtocol, e.Message)
	case EventDone:
		// Completion is decided by the end of the stream.
	}
	return msg
}

// Complete marks a non-terminal message as completed.
func Complete(msg Message) Message {
	if msg.Status.Terminal() {
		return msg
	}
	msg.Status = StatusCompleted
	return msg
}

// Fail marks a non-terminal message as failed and overwrites its visible
// text with the matching notice. Comparison track text is kept.
func Fail(msg Message, reason FailureReason, detail string) Message {
	if msg.Status.Terminal() {
		return msg
	}
	msg.Status = StatusFailed
	msg.Failure = Failure{Reason: reason, Detail: detail}
	if reason == FailureCancelled {
		msg.Content = CancelledNotice
	} else {
		msg.Content = FailureNotice
	}
	return msg
}

func cloneComparison(c *Comparison) *Comparison {
	cp := *c
	return &cp
}

// cloneReferences returns a non-nil copy so an empty sources event still
// counts as the one allowed write.
func cloneReferences(refs []Reference) []Reference {
	out := make([]Reference, len(refs))
	copy(out, refs)
	return out
}
