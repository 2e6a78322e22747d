package framestate

import (
	"CastHub/internal/model"
	"testing"
)

func TestStateRoundTrip(t *testing.T) {
	signer := NewSigner("test-secret", 60)

	state := model.SessionState{RawInput: "1234", Fid: 1234, Username: "alice"}
	token, err := signer.EncodeState(state)
	if err != nil {
		t.Fatalf("encode state: %v", err)
	}

	got := signer.DecodeState(token)
	if got != state {
		t.Fatalf("expected %+v, got %+v", state, got)
	}
}

func TestDecodeStateFallsBackToEmpty(t *testing.T) {
	signer := NewSigner("test-secret", 60)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if got := signer.DecodeState(token); got != (model.SessionState{}) {
			t.Fatalf("token %q: expected empty state, got %+v", token, got)
		}
	}
}

func TestDecodeStateRejectsForeignSignature(t *testing.T) {
	state := model.SessionState{RawInput: "1234"}

	token, err := NewSigner("other-secret", 60).EncodeState(state)
	if err != nil {
		t.Fatalf("encode state: %v", err)
	}

	if got := NewSigner("test-secret", 60).DecodeState(token); got != (model.SessionState{}) {
		t.Fatalf("expected empty state for foreign signature, got %+v", got)
	}
}

func TestCardRoundTrip(t *testing.T) {
	signer := NewSigner("test-secret", 60)

	card := &CardClaims{
		Title:     "User Info: Alice",
		Lines:     []string{"@alice", "Followers: 200"},
		Footer:    "fid 1234",
		AvatarURL: "https://example.com/pfp.png",
	}

	token, err := signer.EncodeCard(card)
	if err != nil {
		t.Fatalf("encode card: %v", err)
	}

	got, err := signer.DecodeCard(token)
	if err != nil {
		t.Fatalf("decode card: %v", err)
	}
	if got.Title != card.Title || got.Footer != card.Footer || got.AvatarURL != card.AvatarURL {
		t.Fatalf("unexpected card %+v", got)
	}
	if len(got.Lines) != 2 || got.Lines[0] != "@alice" {
		t.Fatalf("unexpected lines %v", got.Lines)
	}
}

func TestDecodeCardRejectsGarbage(t *testing.T) {
	signer := NewSigner("test-secret", 60)

	if _, err := signer.DecodeCard("garbage"); err == nil {
		t.Fatalf("expected error for garbage token")
	}
}
