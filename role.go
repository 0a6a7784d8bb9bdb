package ragchat

// Role represents the role of a message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Mode names a retrieval strategy, and in comparison mode the track its
// answer streams into.
type Mode string

const (
	ModeNaive  Mode = "naive"
	ModeHybrid Mode = "hybrid"
)

// Valid reports whether m is a known retrieval mode.
func (m Mode) Valid() bool {
	return m == ModeNaive || m == ModeHybrid
}
