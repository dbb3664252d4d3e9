package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

var ErrDryRun = errors.New("telegram client is in dry mode")

type UpdateHandler func(context.Context, tgbotapi.Update)

type Client struct {
	api         *tgbotapi.BotAPI
	httpClient  *http.Client
	logger      *zap.Logger
	handler     UpdateHandler
	pollTimeout int
	dryRun      bool
}

func NewClient(token string, pollTimeout int, logger *zap.Logger, handler UpdateHandler) (*Client, error) {
	if handler == nil {
		return nil, errors.New("telegram update handler is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if strings.TrimSpace(token) == "" {
		return &Client{
			logger:      logger,
			handler:     handler,
			pollTimeout: pollTimeout,
			dryRun:      true,
		}, nil
	}

	api, err := tgbotapi.NewBotAPI(strings.TrimSpace(token))
	if err != nil {
		return nil, fmt.Errorf("create telegram bot api: %w", err)
	}

	return &Client{
		api:         api,
		httpClient:  &http.Client{Timeout: 60 * time.Second},
		logger:      logger,
		handler:     handler,
		pollTimeout: pollTimeout,
	}, nil
}

// Start long-polls for updates and hands them to the handler one at a time.
// It returns when ctx is cancelled.
func (c *Client) Start(ctx context.Context) error {
	if c.dryRun {
		c.logger.Warn("bot token is empty, running in dry mode")
		<-ctx.Done()
		return nil
	}

	timeout := c.pollTimeout
	if timeout <= 0 {
		timeout = 30
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = timeout
	updates := c.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			c.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			c.handler(ctx, update)
		}
	}
}

func (c *Client) Send(msg tgbotapi.Chattable) (tgbotapi.Message, error) {
	if c.dryRun {
		return tgbotapi.Message{}, nil
	}
	return c.api.Send(msg)
}

// Request is for methods whose result is not a Message, such as
// answerCallbackQuery.
func (c *Client) Request(cfg tgbotapi.Chattable) error {
	if c.dryRun {
		return nil
	}
	_, err := c.api.Request(cfg)
	return err
}

func (c *Client) DownloadFile(ctx context.Context, fileID string) (io.ReadCloser, int64, error) {
	if c.dryRun {
		return nil, 0, ErrDryRun
	}
	if strings.TrimSpace(fileID) == "" {
		return nil, 0, errors.New("file id is required")
	}

	fileURL, err := c.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, 0, fmt.Errorf("get telegram file url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create file request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("download telegram file: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, 0, fmt.Errorf("unexpected telegram file status: %d", resp.StatusCode)
	}

	return resp.Body, resp.ContentLength, nil
}
