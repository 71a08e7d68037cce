package rtc

import (
	"reflect"
	"testing"

	"github.com/pion/webrtc/v4"
)

func TestConfigurationFromHost(t *testing.T) {
	tests := []struct {
		name   string
		config HostObject
		want   webrtc.Configuration
	}{
		{
			name:   "nil config",
			config: nil,
			want:   webrtc.Configuration{},
		},
		{
			name:   "no iceServers",
			config: HostObject{"bundlePolicy": "balanced"},
			want:   webrtc.Configuration{},
		},
		{
			name: "single url string",
			config: HostObject{"iceServers": []any{
				map[string]any{"urls": "stun:stun.example.org:3478"},
			}},
			want: webrtc.Configuration{ICEServers: []webrtc.ICEServer{
				{URLs: []string{"stun:stun.example.org:3478"}},
			}},
		},
		{
			name: "url list with credentials",
			config: HostObject{"iceServers": []any{
				HostObject{
					"urls":       []any{"turn:turn.example.org:3478", "stun:stun.example.org:3478"},
					"username":   "user",
					"credential": "pass",
				},
			}},
			want: webrtc.Configuration{ICEServers: []webrtc.ICEServer{
				{
					URLs:       []string{"turn:turn.example.org:3478", "stun:stun.example.org:3478"},
					Username:   "user",
					Credential: "pass",
				},
			}},
		},
		{
			name: "malformed server entries skipped",
			config: HostObject{"iceServers": []any{
				"not-an-object",
				map[string]any{"urls": "stun:stun.example.org:3478"},
			}},
			want: webrtc.Configuration{ICEServers: []webrtc.ICEServer{
				{URLs: []string{"stun:stun.example.org:3478"}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := configurationFromHost(tt.config)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("configurationFromHost() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPionEngineOfferAnswer(t *testing.T) {
	engine, err := newPionEngine(nil)
	if err != nil {
		t.Fatalf("newPionEngine: %v", err)
	}

	offerer, err := engine.NewPeerConnection(HostObject{"iceServers": []any{
		map[string]any{"urls": "stun:stun.l.google.com:19302"},
	}})
	if err != nil {
		t.Fatalf("NewPeerConnection(offerer): %v", err)
	}
	defer offerer.Close()

	answerer, err := engine.NewPeerConnection(nil)
	if err != nil {
		t.Fatalf("NewPeerConnection(answerer): %v", err)
	}
	defer answerer.Close()

	if offerer.ID() == "" || offerer.ID() == answerer.ID() {
		t.Errorf("connection ids must be unique and non-empty: %q %q", offerer.ID(), answerer.ID())
	}

	// Give the offer a media section so negotiation mirrors real use.
	if _, err := offerer.(*pionPeerConnection).pc.CreateDataChannel("probe", nil); err != nil {
		t.Fatalf("CreateDataChannel: %v", err)
	}

	offer, err := offerer.CreateOffer()
	if err != nil {
		t.Fatalf("CreateOffer: %v", err)
	}
	if offer.Type == nil || *offer.Type != "offer" {
		t.Fatalf("offer type = %v", offer.Type)
	}
	if offer.SDP == nil || *offer.SDP == "" {
		t.Fatal("offer must carry SDP")
	}

	if err := offerer.SetLocalDescription(offer); err != nil {
		t.Fatalf("SetLocalDescription(offer): %v", err)
	}
	if offerer.LocalDescription() == nil {
		t.Fatal("local description must be visible after set")
	}

	if err := answerer.SetRemoteDescription(offer); err != nil {
		t.Fatalf("SetRemoteDescription(offer): %v", err)
	}
	if answerer.RemoteDescription() == nil {
		t.Fatal("remote description must be visible after set")
	}

	answer, err := answerer.CreateAnswer()
	if err != nil {
		t.Fatalf("CreateAnswer: %v", err)
	}
	if answer.Type == nil || *answer.Type != "answer" {
		t.Fatalf("answer type = %v", answer.Type)
	}

	if err := answerer.SetLocalDescription(answer); err != nil {
		t.Fatalf("SetLocalDescription(answer): %v", err)
	}
	if err := offerer.SetRemoteDescription(answer); err != nil {
		t.Fatalf("SetRemoteDescription(answer): %v", err)
	}
}

func TestPionEngineAddCandidateBeforeRemote(t *testing.T) {
	engine, err := newPionEngine(nil)
	if err != nil {
		t.Fatalf("newPionEngine: %v", err)
	}
	pc, err := engine.NewPeerConnection(nil)
	if err != nil {
		t.Fatalf("NewPeerConnection: %v", err)
	}
	defer pc.Close()

	// The engine's own policy applies; this layer adds no checks of its
	// own, it only forwards.
	cand := NewICECandidate(HostObject{
		"candidate":     "candidate:1 1 UDP 2122260223 10.0.0.1 54321 typ host",
		"sdpMLineIndex": 0,
		"sdpMid":        "0",
	})
	if err := pc.AddICECandidate(cand); err == nil {
		t.Error("pion rejects candidates before a remote description; expected its error to surface")
	}
}
