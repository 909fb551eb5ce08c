package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"report_relay_bot/internal/domain/report"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"gopkg.in/telebot.v3"
)

type sentMessage struct {
	ChatID int64
	Text   string
}

type forwardedMessage struct {
	ToChatID   int64
	FromChatID int64
	MessageID  int
}

type fakeClient struct {
	mu         sync.Mutex
	messages   []sentMessage
	forwards   []forwardedMessage
	documents  []string
	sendErr    error
	forwardErr error
	delay      time.Duration // applied to every send, outside the lock
}

func (c *fakeClient) SendMessage(chatID int64, text string, _ *telebot.SendOptions) error {
	time.Sleep(c.delay)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sendErr != nil {
		return c.sendErr
	}
	c.messages = append(c.messages, sentMessage{ChatID: chatID, Text: text})
	return nil
}

func (c *fakeClient) ForwardMessage(toChatID, fromChatID int64, messageID int) error {
	time.Sleep(c.delay)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.forwardErr != nil {
		return c.forwardErr
	}
	c.forwards = append(c.forwards, forwardedMessage{ToChatID: toChatID, FromChatID: fromChatID, MessageID: messageID})
	return nil
}

func (c *fakeClient) SendDocument(chatID int64, filePath, _ string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.documents = append(c.documents, filePath)
	return nil
}

// memoryRepo is an in-memory report.Repository.
type memoryRepo struct {
	mu      sync.Mutex
	reports []*report.Report
	err     error
}

func (r *memoryRepo) Create(_ context.Context, rep *report.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	rep.ID = int64(len(r.reports) + 1)
	rep.CreatedAt = time.Now()
	cp := *rep
	r.reports = append(r.reports, &cp)
	return nil
}

func (r *memoryRepo) List(_ context.Context, f report.Filter) ([]*report.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []*report.Report
	for i := len(r.reports) - 1; i >= 0 && len(out) < f.Limit; i-- {
		rep := r.reports[i]
		if f.ObjectCode != nil && rep.ObjectCode != *f.ObjectCode {
			continue
		}
		if f.Category != nil && rep.Category != *f.Category {
			continue
		}
		out = append(out, rep)
	}
	return out, nil
}

func (r *memoryRepo) ListAll(ctx context.Context) ([]*report.Report, error) {
	return r.List(ctx, report.Filter{Limit: len(r.reports)})
}

var errBoom = errors.New("boom")

func testLogger() *logrus.Entry {
	l, _ := test.NewNullLogger()
	return logrus.NewEntry(l)
}
