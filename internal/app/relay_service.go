package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"report_relay_bot/internal/domain/report"
	domainTelegram "report_relay_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
)

var ErrRecipientNotConfigured = errors.New("recipient chat is not configured")

// Step tells the transport what happened to an incoming message.
type Step int

const (
	StepNeedCategory     Step = iota // no draft, message ignored
	StepCategorySelected             // draft started
	StepNeedObjectCode               // draft waits for a text object code
	StepObjectCodeSet                // draft is complete, waiting for content
	StepRelayed                      // content relayed and recorded
)

// IncomingMessage is the part of a chat message the relay needs.
type IncomingMessage struct {
	UserID      int64
	FirstName   string
	LastName    string
	Username    string
	ChatID      int64
	MessageID   int
	ContentType report.ContentType
	Text        string // text or caption
}

// DisplayName is the sender's full name.
func (m IncomingMessage) DisplayName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}

// Result describes the state after HandleMessage.
type Result struct {
	Step   Step
	Draft  report.Draft
	Report *report.Report // set for StepRelayed
}

type RelayService struct {
	drafts          *DraftTracker
	reportRepo      report.Repository
	telegramClient  domainTelegram.Client
	recipientChatID int64
	logger          *logrus.Entry
	now             func() time.Time
}

func NewRelayService(
	drafts *DraftTracker,
	rr report.Repository,
	tc domainTelegram.Client,
	recipientChatID int64,
	logger *logrus.Entry,
) *RelayService {
	return &RelayService{
		drafts:          drafts,
		reportRepo:      rr,
		telegramClient:  tc,
		recipientChatID: recipientChatID,
		logger:          logger,
		now:             time.Now,
	}
}

// HandleMessage advances the sender's draft with msg. When the draft is
// complete, msg is relayed to the recipient and recorded.
func (s *RelayService) HandleMessage(ctx context.Context, msg IncomingMessage) (Result, error) {
	log := s.logger.WithFields(logrus.Fields{
		"user_id":      msg.UserID,
		"content_type": msg.ContentType,
	})

	if msg.ContentType == report.ContentText && report.IsCategory(msg.Text) {
		d := s.drafts.Start(msg.UserID, msg.Text)
		log.WithField("category", msg.Text).Debug("Draft started")
		return Result{Step: StepCategorySelected, Draft: d}, nil
	}

	draft, ok := s.drafts.Get(msg.UserID)
	if !ok {
		return Result{Step: StepNeedCategory}, nil
	}

	if !draft.HasObjectCode() {
		code := strings.TrimSpace(msg.Text)
		if msg.ContentType != report.ContentText || code == "" {
			return Result{Step: StepNeedObjectCode, Draft: draft}, nil
		}
		draft, _ = s.drafts.SetObjectCode(msg.UserID, code)
		log.WithField("object_code", code).Debug("Object code set")
		return Result{Step: StepObjectCodeSet, Draft: draft}, nil
	}

	if s.recipientChatID == 0 {
		log.Warn("Report not relayed: recipient is not configured")
		return Result{Step: StepObjectCodeSet, Draft: draft}, ErrRecipientNotConfigured
	}

	// Concurrent updates (a photo album) must not submit the same draft twice.
	draft, ok = s.drafts.Take(msg.UserID)
	if !ok {
		log.Debug("Draft already consumed by a concurrent message")
		return Result{Step: StepNeedCategory}, nil
	}

	header := BuildHeader(draft.Category, *draft.ObjectCode, msg.DisplayName(), msg.Username, msg.UserID, s.now())
	if err := s.telegramClient.SendMessage(s.recipientChatID, header, nil); err != nil {
		s.drafts.Restore(msg.UserID, draft)
		return Result{Step: StepObjectCodeSet, Draft: draft}, fmt.Errorf("failed to send report header: %w", err)
	}
	if err := s.telegramClient.ForwardMessage(s.recipientChatID, msg.ChatID, msg.MessageID); err != nil {
		s.drafts.Restore(msg.UserID, draft)
		return Result{Step: StepObjectCodeSet, Draft: draft}, fmt.Errorf("failed to forward report: %w", err)
	}

	rep := &report.Report{
		Category:    draft.Category,
		ObjectCode:  *draft.ObjectCode,
		UserID:      msg.UserID,
		UserName:    msg.DisplayName(),
		Username:    sql.NullString{String: msg.Username, Valid: msg.Username != ""},
		ChatID:      msg.ChatID,
		MessageID:   msg.MessageID,
		ContentType: msg.ContentType,
		TextPreview: report.Preview(msg.Text),
	}
	if err := s.reportRepo.Create(ctx, rep); err != nil {
		return Result{Step: StepRelayed, Draft: draft}, fmt.Errorf("failed to record report: %w", err)
	}

	log.WithFields(logrus.Fields{
		"report_id":   rep.ID,
		"category":    rep.Category,
		"object_code": rep.ObjectCode,
	}).Info("Report relayed")
	return Result{Step: StepRelayed, Draft: draft, Report: rep}, nil
}

// AwaitingContent reports whether the user's next message will be relayed.
func (s *RelayService) AwaitingContent(userID int64) bool {
	d, ok := s.drafts.Get(userID)
	return ok && d.HasObjectCode()
}

// Cancel drops the user's draft. It reports whether one existed.
func (s *RelayService) Cancel(userID int64) bool {
	return s.drafts.Clear(userID)
}

// BuildHeader renders the message sent to the recipient ahead of a relayed report.
func BuildHeader(category, objectCode, userName, username string, userID int64, at time.Time) string {
	if username == "" {
		username = "нет"
	}
	return fmt.Sprintf(
		"🔔 Новый отчёт\nКатегория: %s\nОбъект: %s\nОт: %s (@%s)\nUserID: %d\nВремя: %s",
		category, objectCode, userName, username, userID, at.Format("2006-01-02 15:04"),
	)
}
