package rtc

// SDPType is the signaling role of a session description.
type SDPType string

const (
	// SDPTypeOffer indicates the description is an SDP offer.
	SDPTypeOffer SDPType = "offer"

	// SDPTypePranswer indicates the description is a provisional, not yet
	// final, SDP answer.
	SDPTypePranswer SDPType = "pranswer"

	// SDPTypeAnswer indicates the description is the final SDP answer and
	// the offer-answer exchange is complete.
	SDPTypeAnswer SDPType = "answer"

	// SDPTypeRollback cancels the current negotiation and rolls the
	// descriptions back to the previous stable state.
	SDPTypeRollback SDPType = "rollback"
)

// Valid reports whether t is one of the four signaling roles. The
// descriptor factory never calls this; enforcement of the type field, if
// any, happens downstream in the engine.
func (t SDPType) Valid() bool {
	switch t {
	case SDPTypeOffer, SDPTypePranswer, SDPTypeAnswer, SDPTypeRollback:
		return true
	}
	return false
}

func (t SDPType) String() string { return string(t) }
