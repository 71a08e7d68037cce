package rtc

// SessionDescription carries the signaling role and SDP payload of one side
// of an offer-answer exchange. Both fields are optional: nil means the host
// object the record was built from did not carry the field. The SDP text is
// opaque to this layer and is never parsed or validated here.
type SessionDescription struct {
	Type *string `json:"type,omitempty"`
	SDP  *string `json:"sdp,omitempty"`
}

// NewSessionDescription builds a SessionDescription from a host object,
// copying type and sdp iff they are present. Any other field on init is
// silently dropped. A nil init yields an empty record, same as an empty
// object. Every call returns a fresh record.
func NewSessionDescription(init HostObject) SessionDescription {
	var desc SessionDescription
	if init == nil {
		return desc
	}
	if v, ok := stringField(init, "type"); ok {
		desc.Type = &v
	}
	if v, ok := stringField(init, "sdp"); ok {
		desc.SDP = &v
	}
	return desc
}

// Empty reports whether no fields were present on construction.
func (d SessionDescription) Empty() bool {
	return d.Type == nil && d.SDP == nil
}
