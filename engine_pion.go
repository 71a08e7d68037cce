package rtc

import (
	"github.com/pion/logging"
	"github.com/pion/webrtc/v4"
)

// pionEngine is the pure-Go engine provider backed by pion/webrtc. It needs
// no native code and is always available.
type pionEngine struct {
	api *webrtc.API
	log logging.LeveledLogger
}

func newPionEngine(lf logging.LoggerFactory) (Engine, error) {
	settings := webrtc.SettingEngine{}
	if lf != nil {
		settings.LoggerFactory = lf
	}
	e := &pionEngine{api: webrtc.NewAPI(webrtc.WithSettingEngine(settings))}
	if lf != nil {
		e.log = lf.NewLogger("rtc-pion")
	}
	return e, nil
}

func (e *pionEngine) Name() string { return "pion" }

func (e *pionEngine) NewPeerConnection(config HostObject) (PeerConnection, error) {
	pc, err := e.api.NewPeerConnection(configurationFromHost(config))
	if err != nil {
		return nil, err
	}
	conn := &pionPeerConnection{id: newConnID(), pc: pc}
	if e.log != nil {
		e.log.Debugf("created peer connection %s", conn.id)
	}
	return conn, nil
}

// configurationFromHost maps a host configuration object onto
// webrtc.Configuration. Only fields present on the object are set; nothing
// is defaulted or validated here — pion applies its own policy downstream.
func configurationFromHost(config HostObject) webrtc.Configuration {
	var out webrtc.Configuration
	if config == nil {
		return out
	}
	servers, ok := config["iceServers"].([]any)
	if !ok {
		return out
	}
	for _, entry := range servers {
		obj, ok := asHostObject(entry)
		if !ok {
			continue
		}
		server := webrtc.ICEServer{}
		switch urls := obj["urls"].(type) {
		case string:
			server.URLs = []string{urls}
		case []string:
			server.URLs = append(server.URLs, urls...)
		case []any:
			for _, u := range urls {
				if s, ok := u.(string); ok {
					server.URLs = append(server.URLs, s)
				}
			}
		}
		if v, ok := stringField(obj, "username"); ok {
			server.Username = v
		}
		if v, ok := stringField(obj, "credential"); ok {
			server.Credential = v
		}
		out.ICEServers = append(out.ICEServers, server)
	}
	return out
}

// pionPeerConnection adapts *webrtc.PeerConnection to the PeerConnection
// interface. All state lives in the underlying pion object.
type pionPeerConnection struct {
	id string
	pc *webrtc.PeerConnection
}

func (p *pionPeerConnection) ID() string { return p.id }

func (p *pionPeerConnection) CreateOffer() (SessionDescription, error) {
	offer, err := p.pc.CreateOffer(nil)
	if err != nil {
		return SessionDescription{}, err
	}
	return descriptionFromPion(offer), nil
}

func (p *pionPeerConnection) CreateAnswer() (SessionDescription, error) {
	answer, err := p.pc.CreateAnswer(nil)
	if err != nil {
		return SessionDescription{}, err
	}
	return descriptionFromPion(answer), nil
}

func (p *pionPeerConnection) SetLocalDescription(desc SessionDescription) error {
	return p.pc.SetLocalDescription(descriptionToPion(desc))
}

func (p *pionPeerConnection) SetRemoteDescription(desc SessionDescription) error {
	return p.pc.SetRemoteDescription(descriptionToPion(desc))
}

func (p *pionPeerConnection) LocalDescription() *SessionDescription {
	d := p.pc.LocalDescription()
	if d == nil {
		return nil
	}
	desc := descriptionFromPion(*d)
	return &desc
}

func (p *pionPeerConnection) RemoteDescription() *SessionDescription {
	d := p.pc.RemoteDescription()
	if d == nil {
		return nil
	}
	desc := descriptionFromPion(*d)
	return &desc
}

func (p *pionPeerConnection) AddICECandidate(candidate ICECandidate) error {
	init := webrtc.ICECandidateInit{
		SDPMid:        candidate.SDPMid,
		SDPMLineIndex: candidate.SDPMLineIndex,
	}
	if candidate.Candidate != nil {
		init.Candidate = *candidate.Candidate
	}
	return p.pc.AddICECandidate(init)
}

func (p *pionPeerConnection) OnICECandidate(f func(*ICECandidate)) {
	p.pc.OnICECandidate(func(c *webrtc.ICECandidate) {
		if c == nil {
			f(nil)
			return
		}
		init := c.ToJSON()
		f(&ICECandidate{
			Candidate:     &init.Candidate,
			SDPMLineIndex: init.SDPMLineIndex,
			SDPMid:        init.SDPMid,
		})
	})
}

func (p *pionPeerConnection) Close() error { return p.pc.Close() }

func descriptionFromPion(d webrtc.SessionDescription) SessionDescription {
	typ := d.Type.String()
	sdp := d.SDP
	return SessionDescription{Type: &typ, SDP: &sdp}
}

func descriptionToPion(d SessionDescription) webrtc.SessionDescription {
	var out webrtc.SessionDescription
	if d.Type != nil {
		out.Type = webrtc.NewSDPType(*d.Type)
	}
	if d.SDP != nil {
		out.SDP = *d.SDP
	}
	return out
}
