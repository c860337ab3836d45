// Package notify broadcasts convocations and match reminders to the squad
// over WhatsApp. One pairing per coach account; messages go to every active
// player with a phone number on file.
package notify

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/webstats/crm/pkg/constant"
	"github.com/webstats/crm/pkg/domains/roster"
	"github.com/webstats/crm/pkg/dtos"
	"github.com/webstats/crm/pkg/entities"
	"go.mau.fi/whatsmeow"
	waProto "go.mau.fi/whatsmeow/binary/proto"
	"go.mau.fi/whatsmeow/store/sqlstore"
	waTypes "go.mau.fi/whatsmeow/types"
	waLog "go.mau.fi/whatsmeow/util/log"
	"google.golang.org/protobuf/proto"
	"gorm.io/gorm"
)

type Service interface {
	// Pair returns a QR code for linking the coach's WhatsApp, or a status
	// message when the account is already linked.
	Pair(ctx context.Context, userID uint) (string, error)
	Connect(ctx context.Context, userID uint) error
	Disconnect(ctx context.Context, userID uint) error
	Status(ctx context.Context, userID uint) dtos.NotifyStatusDTO
	Broadcast(ctx context.Context, userID uint, req dtos.AnnouncementDTO) (*dtos.BroadcastResultDTO, error)
}

// session is one coach's linked WhatsApp client.
type session struct {
	client *whatsmeow.Client
	store  *sqlstore.Container
	cancel context.CancelFunc
}

type service struct {
	db       *gorm.DB
	roster   roster.Repository
	sessions map[uint]*session
	mutex    sync.RWMutex
}

func NewService(db *gorm.DB, rosterRepo roster.Repository) Service {
	return &service{
		db:       db,
		roster:   rosterRepo,
		sessions: make(map[uint]*session),
	}
}

// sessionDSN stores each coach's device keys in their own sqlite file next
// to the application database, so a pairing survives restarts.
func sessionDSN(userID uint) string {
	return fmt.Sprintf("file:whatsapp-user-%d.db?_pragma=foreign_keys(1)", userID)
}

func (s *service) getSession(ctx context.Context, userID uint) (*session, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if sess, ok := s.sessions[userID]; ok {
		return sess, nil
	}

	clientLog := waLog.Stdout(fmt.Sprintf("notify-user-%d", userID), "WARN", true)
	sessCtx, cancel := context.WithCancel(context.Background())
	store, err := sqlstore.New(sessCtx, "sqlite", sessionDSN(userID), clientLog)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create session store: %v", err)
	}
	device, err := store.GetFirstDevice(sessCtx)
	if err != nil {
		cancel()
		store.Close()
		return nil, fmt.Errorf("failed to get device: %v", err)
	}

	sess := &session{
		client: whatsmeow.NewClient(device, clientLog),
		store:  store,
		cancel: cancel,
	}
	s.sessions[userID] = sess
	return sess, nil
}

func (s *service) Pair(ctx context.Context, userID uint) (string, error) {
	sess, err := s.getSession(ctx, userID)
	if err != nil {
		return "", err
	}

	if sess.client.Store.ID != nil {
		return "already linked", nil
	}

	// QR channel must be requested before connecting.
	qrChan, err := sess.client.GetQRChannel(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get QR channel: %v", err)
	}
	if err := sess.client.Connect(); err != nil {
		return "", fmt.Errorf("failed to connect: %v", err)
	}

	for evt := range qrChan {
		switch evt.Event {
		case "code":
			log.Printf("[info] pairing QR generated for user %d", userID)
			return evt.Code, nil
		case "success":
			log.Printf("[info] user %d linked WhatsApp", userID)
			return "linked", nil
		case "timeout":
			return "", fmt.Errorf("QR code expired")
		case "error":
			return "", fmt.Errorf("QR pairing failed: %v", evt.Error)
		}
	}
	return "", fmt.Errorf("QR channel closed before pairing completed")
}

func (s *service) Connect(ctx context.Context, userID uint) error {
	s.mutex.RLock()
	sess, ok := s.sessions[userID]
	s.mutex.RUnlock()
	if !ok || sess.client.Store.ID == nil {
		return fmt.Errorf("not linked to WhatsApp, pair first")
	}
	if sess.client.IsConnected() {
		return nil
	}
	return sess.client.Connect()
}

func (s *service) Disconnect(ctx context.Context, userID uint) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return nil
	}
	sess.cancel()
	sess.client.Disconnect()
	sess.store.Close()
	delete(s.sessions, userID)
	log.Printf("[info] closed announcement session for user %d", userID)
	return nil
}

func (s *service) Status(ctx context.Context, userID uint) dtos.NotifyStatusDTO {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return dtos.NotifyStatusDTO{}
	}
	return dtos.NotifyStatusDTO{
		Connected: sess.client.IsConnected(),
		LoggedIn:  sess.client.Store.ID != nil,
	}
}

// Broadcast sends the announcement to every active player with a phone
// number and records the outcome in AnnouncementLog.
func (s *service) Broadcast(ctx context.Context, userID uint, req dtos.AnnouncementDTO) (*dtos.BroadcastResultDTO, error) {
	s.mutex.RLock()
	sess, ok := s.sessions[userID]
	s.mutex.RUnlock()
	if !ok || sess.client.Store.ID == nil {
		return nil, fmt.Errorf("not linked to WhatsApp, pair first")
	}
	if !sess.client.IsConnected() {
		return nil, fmt.Errorf("WhatsApp not connected, call connect first")
	}

	team, err := s.roster.PrimaryTeam(ctx)
	if err != nil {
		return nil, fmt.Errorf(constant.CANT_FIND, "primary team")
	}
	players, err := s.roster.ListPlayers(ctx, team.ID)
	if err != nil {
		return nil, err
	}

	result := dtos.BroadcastResultDTO{Kind: req.Kind}
	msg := &waProto.Message{
		Conversation: proto.String(req.Message),
	}
	for _, player := range players {
		jid, err := phoneToJID(player.Phone)
		if err != nil {
			result.Skipped = append(result.Skipped, player.Name)
			continue
		}
		if _, err := sess.client.SendMessage(ctx, jid, msg); err != nil {
			log.Printf("[error] announcement to %s failed: %v", player.Name, err)
			result.Failed++
			continue
		}
		result.Sent++
	}

	entry := entities.AnnouncementLog{
		UserID:  userID,
		TeamID:  team.ID,
		Kind:    req.Kind,
		Content: req.Message,
		Sent:    result.Sent,
		Failed:  result.Failed,
		SentAt:  time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return &result, err
	}

	log.Printf("[info] %s broadcast by user %d: %d sent, %d failed, %d skipped",
		req.Kind, userID, result.Sent, result.Failed, len(result.Skipped))
	return &result, nil
}

var nonDigits = regexp.MustCompile(`[^\d+]`)

func phoneToJID(phone string) (waTypes.JID, error) {
	clean := strings.TrimPrefix(nonDigits.ReplaceAllString(phone, ""), "+")
	if len(clean) < 9 {
		return waTypes.JID{}, fmt.Errorf("invalid phone number")
	}
	return waTypes.NewJID(clean, waTypes.DefaultUserServer), nil
}
