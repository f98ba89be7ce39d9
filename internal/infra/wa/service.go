package wa

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/mdp/qrterminal"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	walog "go.mau.fi/whatsmeow/util/log"
	_ "modernc.org/sqlite"

	"github.com/fardannozami/leetcode-tracker/internal/infra/database"
)

// IncomingMessage is a text message received from a chat.
type IncomingMessage struct {
	Chat     types.JID
	Sender   types.JID
	PushName string
	Text     string
}

type MessageHandler func(ctx context.Context, msg IncomingMessage)

// ReplyOptions makes replies look less mechanical. MaxDelay of zero uses
// MinDelay as a fixed delay.
type ReplyOptions struct {
	MinDelay   time.Duration
	MaxDelay   time.Duration
	ShowTyping bool
}

type Service struct {
	client         *whatsmeow.Client
	dbPath         string
	replyOpts      ReplyOptions
	log            walog.Logger
	messageHandler MessageHandler
}

func NewService(dbPath string, replyOpts ReplyOptions, logger walog.Logger) *Service {
	return &Service{
		dbPath:    dbPath,
		replyOpts: replyOpts,
		log:       logger,
	}
}

// Initialize opens the device store and prepares the client without connecting.
// The device store shares the tracker's SQLite file, which is what lets
// LID lookups read whatsmeow_lid_map.
func (s *Service) Initialize(ctx context.Context) error {
	container, err := sqlstore.New(ctx, "sqlite", database.SQLiteDSN(s.dbPath), s.log.Sub("Store"))
	if err != nil {
		return fmt.Errorf("failed to open device store: %w", err)
	}

	devices, err := container.GetAllDevices(ctx)
	if err != nil {
		return fmt.Errorf("failed to get devices: %w", err)
	}

	var device *store.Device
	if len(devices) > 0 {
		device = devices[0]
	} else {
		device = container.NewDevice()
	}

	s.client = whatsmeow.NewClient(device, s.log)
	s.client.AddEventHandler(s.handleEvent)

	return nil
}

func (s *Service) Connect() error {
	if s.client == nil {
		return fmt.Errorf("client not initialized")
	}
	if s.client.IsConnected() {
		return nil
	}
	return s.client.Connect()
}

func (s *Service) Disconnect() {
	if s.client != nil {
		s.client.Disconnect()
	}
}

func (s *Service) SetMessageHandler(handler MessageHandler) {
	s.messageHandler = handler
}

func (s *Service) handleEvent(evt interface{}) {
	switch v := evt.(type) {
	case *events.Message:
		msg, ok := toIncomingMessage(v)
		if ok && s.messageHandler != nil {
			go s.messageHandler(context.Background(), msg)
		}
	case *events.Connected:
		s.log.Infof("Connected to WhatsApp")
	case *events.LoggedOut:
		s.log.Warnf("Logged out from WhatsApp, pair the device again")
	}
}

// toIncomingMessage drops our own messages and anything without text.
func toIncomingMessage(evt *events.Message) (IncomingMessage, bool) {
	if evt.Info.IsFromMe || evt.Message == nil {
		return IncomingMessage{}, false
	}

	text := evt.Message.GetConversation()
	if text == "" {
		text = evt.Message.GetExtendedTextMessage().GetText()
	}
	if text == "" {
		return IncomingMessage{}, false
	}

	return IncomingMessage{
		Chat:     evt.Info.Chat,
		Sender:   evt.Info.Sender,
		PushName: evt.Info.PushName,
		Text:     text,
	}, true
}

// IsLID reports whether the JID is a hidden user id rather than a phone number.
func IsLID(jid types.JID) bool {
	return jid.Server == types.HiddenUserServer || (jid.Server == types.DefaultUserServer && len(jid.User) > 15)
}

func (s *Service) IsLoggedIn() bool {
	return s.client.Store.ID != nil
}

func (s *Service) Pair(ctx context.Context, phone string) (string, error) {
	if s.IsLoggedIn() {
		return "", fmt.Errorf("already logged in")
	}
	if !s.client.IsConnected() {
		return "", fmt.Errorf("client not connected")
	}

	return s.client.PairPhone(ctx, phone, true, whatsmeow.PairClientChrome, "Chrome (Linux)")
}

// PrintQR connects and renders login QR codes until the channel closes.
func (s *Service) PrintQR(ctx context.Context) {
	if s.IsLoggedIn() {
		return
	}

	qrChan, _ := s.client.GetQRChannel(ctx)
	if err := s.client.Connect(); err != nil {
		fmt.Println("Failed to connect for QR:", err)
		return
	}
	for evt := range qrChan {
		if evt.Event == "code" {
			fmt.Println("QR Code:", evt.Code)
			qrterminal.GenerateHalfBlock(evt.Code, qrterminal.L, os.Stdout)
		} else {
			fmt.Println("Login event:", evt.Event)
		}
	}
}

// Reply answers in chat after the configured delay, showing a typing
// indicator while waiting when enabled.
func (s *Service) Reply(ctx context.Context, chat types.JID, text string) error {
	if delay := s.replyOpts.delay(); delay > 0 {
		if s.replyOpts.ShowTyping {
			_ = s.client.SendChatPresence(ctx, chat, types.ChatPresenceComposing, types.ChatPresenceMediaText)
		}

		s.log.Debugf("Delaying reply by %s", delay)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}

		if s.replyOpts.ShowTyping {
			_ = s.client.SendChatPresence(ctx, chat, types.ChatPresencePaused, types.ChatPresenceMediaText)
		}
	}
	return s.send(ctx, chat, text)
}

// SendText posts a message to a chat given as a JID string, e.g. a group id.
func (s *Service) SendText(ctx context.Context, chatJID, text string) error {
	chat, err := types.ParseJID(chatJID)
	if err != nil {
		return fmt.Errorf("invalid chat id %q: %w", chatJID, err)
	}
	return s.send(ctx, chat, text)
}

func (s *Service) send(ctx context.Context, chat types.JID, text string) error {
	if s.client == nil || !s.client.IsConnected() {
		return fmt.Errorf("client not connected")
	}
	_, err := s.client.SendMessage(ctx, chat, &waE2E.Message{Conversation: &text})
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

func (o ReplyOptions) delay() time.Duration {
	if o.MaxDelay <= o.MinDelay {
		return o.MinDelay
	}
	return o.MinDelay + time.Duration(rand.Int63n(int64(o.MaxDelay-o.MinDelay)+1))
}
