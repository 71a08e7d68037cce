package rtc

import "testing"

func TestSDPTypeValid(t *testing.T) {
	tests := []struct {
		typ  SDPType
		want bool
	}{
		{SDPTypeOffer, true},
		{SDPTypePranswer, true},
		{SDPTypeAnswer, true},
		{SDPTypeRollback, true},
		{SDPType(""), false},
		{SDPType("Offer"), false},
		{SDPType("offer "), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			if got := tt.typ.Valid(); got != tt.want {
				t.Errorf("SDPType(%q).Valid() = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestSDPTypeString(t *testing.T) {
	if SDPTypeOffer.String() != "offer" || SDPTypeRollback.String() != "rollback" {
		t.Error("String must return the wire value unchanged")
	}
}
