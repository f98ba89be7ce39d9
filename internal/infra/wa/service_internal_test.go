package wa

import (
	"testing"
	"time"

	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
)

func textEvent(text string, fromMe bool) *events.Message {
	return &events.Message{
		Info: types.MessageInfo{
			MessageSource: types.MessageSource{
				Chat:     types.NewJID("120363000000000000", types.GroupServer),
				Sender:   types.NewJID("628123456789", types.DefaultUserServer),
				IsFromMe: fromMe,
			},
			PushName: "Alice",
		},
		Message: &waE2E.Message{Conversation: &text},
	}
}

func TestToIncomingMessage_Conversation(t *testing.T) {
	msg, ok := toIncomingMessage(textEvent("#streak", false))
	if !ok {
		t.Fatal("Expected message to be accepted")
	}
	if msg.Text != "#streak" || msg.PushName != "Alice" || msg.Sender.User != "628123456789" {
		t.Errorf("Unexpected message: %+v", msg)
	}
	if msg.Chat.Server != types.GroupServer {
		t.Errorf("Expected group chat, got %s", msg.Chat)
	}
}

func TestToIncomingMessage_ExtendedText(t *testing.T) {
	text := "#solved two-sum"
	evt := textEvent("", false)
	evt.Message = &waE2E.Message{ExtendedTextMessage: &waE2E.ExtendedTextMessage{Text: &text}}

	msg, ok := toIncomingMessage(evt)
	if !ok || msg.Text != text {
		t.Errorf("Expected %q, got %q (ok=%v)", text, msg.Text, ok)
	}
}

func TestToIncomingMessage_IgnoresOwnAndEmpty(t *testing.T) {
	if _, ok := toIncomingMessage(textEvent("#streak", true)); ok {
		t.Error("Expected own message to be ignored")
	}
	if _, ok := toIncomingMessage(textEvent("", false)); ok {
		t.Error("Expected empty message to be ignored")
	}
}

func TestIsLID(t *testing.T) {
	if !IsLID(types.NewJID("123456789012345", types.HiddenUserServer)) {
		t.Error("Expected lid server to be a LID")
	}
	if !IsLID(types.NewJID("1234567890123456", types.DefaultUserServer)) {
		t.Error("Expected long user id to be a LID")
	}
	if IsLID(types.NewJID("628123456789", types.DefaultUserServer)) {
		t.Error("Expected phone number not to be a LID")
	}
}

func TestReplyOptions_Delay(t *testing.T) {
	fixed := ReplyOptions{MinDelay: 300 * time.Millisecond}
	if d := fixed.delay(); d != 300*time.Millisecond {
		t.Errorf("Expected fixed 300ms, got %s", d)
	}

	ranged := ReplyOptions{MinDelay: time.Second, MaxDelay: 2 * time.Second}
	for i := 0; i < 50; i++ {
		if d := ranged.delay(); d < time.Second || d > 2*time.Second {
			t.Fatalf("Delay %s out of range", d)
		}
	}
}
