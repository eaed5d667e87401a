package messages

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/logger"
)

//go:generate minimock -i messageSender -o ./mock/ -s _mock.go

type messageSender interface {
	SendMessage(text string, userID int64) error
}

type MessageHandler interface {
	HandleMessage(ctx context.Context, text string, userID int64) (string, error)
}

type Service struct {
	tgClient messageSender
	handler  MessageHandler
}

func NewService(tgClient messageSender, workspaces workspaces) *Service {
	return &Service{
		tgClient: tgClient,
		handler:  newHandler(workspaces),
	}
}

type Message struct {
	Text   string
	UserID int64
}

func (s *Service) HandleIncomingMessage(ctx context.Context, msg Message) error {
	cmd, _ := parseCommand(msg.Text)
	known := commandLabel(cmd)

	span, ctx := opentracing.StartSpanFromContext(ctx, "handleMessage")
	span.SetTag("command", known)
	defer span.Finish()

	start := time.Now()
	err := s.handle(ctx, msg)
	elapsed := time.Since(start)

	observeResponse(known, elapsed, err != nil)
	if err != nil {
		ext.Error.Set(span, true)
		logger.Error("failed to handle message", zap.String("command", known), zap.Error(err))
	}
	return err
}

func (s *Service) handle(ctx context.Context, msg Message) error {
	resp, err := s.handler.HandleMessage(ctx, msg.Text, msg.UserID)
	if err != nil {
		_ = s.tgClient.SendMessage(somethingWentWrongPrefix+resp, msg.UserID)
		return err
	}
	return s.tgClient.SendMessage(resp, msg.UserID)
}
