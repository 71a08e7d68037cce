package rtc

// ICECandidate carries one ICE candidate as exchanged during signaling.
// All fields are optional; nil means the host object the record was built
// from did not carry the field. The candidate string is opaque to this
// layer.
type ICECandidate struct {
	Candidate     *string `json:"candidate,omitempty"`
	SDPMLineIndex *uint16 `json:"sdpMLineIndex,omitempty"`
	SDPMid        *string `json:"sdpMid,omitempty"`
}

// NewICECandidate builds an ICECandidate from a host object, copying
// candidate, sdpMLineIndex and sdpMid iff they are present. Any other field
// on init is silently dropped. A nil init yields an empty record, same as
// an empty object. Every call returns a fresh record.
func NewICECandidate(init HostObject) ICECandidate {
	var cand ICECandidate
	if init == nil {
		return cand
	}
	if v, ok := stringField(init, "candidate"); ok {
		cand.Candidate = &v
	}
	if v, ok := uint16Field(init, "sdpMLineIndex"); ok {
		cand.SDPMLineIndex = &v
	}
	if v, ok := stringField(init, "sdpMid"); ok {
		cand.SDPMid = &v
	}
	return cand
}

// Empty reports whether no fields were present on construction.
func (c ICECandidate) Empty() bool {
	return c.Candidate == nil && c.SDPMLineIndex == nil && c.SDPMid == nil
}
