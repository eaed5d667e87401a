package tg

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/logger"
	"max.ks1230/finance-tracker/internal/model/messages"
)

const (
	defaultUpdateOffset   = 0
	defaultTimeoutSeconds = 5
	pollTimeoutSeconds    = 60
)

type config interface {
	Token() string
	Timeout() int
}

type incomingHandler interface {
	HandleIncomingMessage(ctx context.Context, msg messages.Message) error
}

type Client struct {
	client  *tgbotapi.BotAPI
	timeout time.Duration
}

func New(cfg config) (*Client, error) {
	if cfg.Token() == "" {
		return nil, errors.New("telegram token is not set")
	}
	client, err := tgbotapi.NewBotAPI(cfg.Token())
	if err != nil {
		return nil, errors.Wrap(err, "cannot NewBotApi")
	}

	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = defaultTimeoutSeconds
	}
	return &Client{client: client, timeout: time.Duration(timeout) * time.Second}, nil
}

func (c *Client) SendMessage(text string, userID int64) error {
	_, err := c.client.Send(tgbotapi.NewMessage(userID, text))
	if err != nil {
		return errors.Wrap(err, "client.Send")
	}
	return nil
}

// ListenUpdates serves chat messages one at a time until ctx is done.
func (c *Client) ListenUpdates(ctx context.Context, msgModel incomingHandler) {
	u := tgbotapi.NewUpdate(defaultUpdateOffset)
	u.Timeout = pollTimeoutSeconds

	updates := c.client.GetUpdatesChan(u)

	logger.Info("Start listening for messages")

	for {
		select {
		case <-ctx.Done():
			c.client.StopReceivingUpdates()
			logger.Info("Stop listening for messages")
			return
		case update := <-updates:
			c.listenOnce(ctx, update, msgModel)
		}
	}
}

func (c *Client) listenOnce(ctx context.Context, update tgbotapi.Update, msgModel incomingHandler) {
	if update.Message == nil {
		return
	}
	var userName string
	if update.Message.From != nil {
		userName = update.Message.From.UserName
	}
	// text is not logged, it may carry a password
	logger.Info("incoming message",
		zap.Int64("chat", update.Message.Chat.ID),
		zap.String("user", userName))

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	err := msgModel.HandleIncomingMessage(ctx, messages.Message{
		Text:   update.Message.Text,
		UserID: update.Message.Chat.ID,
	})
	if err != nil {
		logger.Error("error processing message", zap.Error(err))
	}
}
