package host

// State is a step of the report pipeline.
type State string

const (
	Idle         State = "idle"
	Collecting   State = "collecting"
	Accepted     State = "accepted"
	Rejected     State = "rejected"
	Serialized   State = "serialized"
	Encrypted    State = "encrypted"
	Sent         State = "sent"
	Acknowledged State = "acknowledged"
	Failed       State = "failed"
)

func (s State) String() string { return string(s) }

