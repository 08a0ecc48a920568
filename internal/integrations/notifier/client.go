package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ErrDispatchFailed возвращается, когда сервис уведомлений недоступен
// или отклонил событие
var ErrDispatchFailed = errors.New("notifier: dispatch failed")

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент сервиса уведомлений. Отправка работает по принципу
// fire-and-forget: ошибка доставки логируется и никогда не откатывает
// бронирование или отмену.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Dispatch отправляет событие в сервис уведомлений
func (c *Client) Dispatch(ctx context.Context, event *Event) error {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", ErrDispatchFailed, err)
	}

	url := fmt.Sprintf("%s/internal/notifications", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrDispatchFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: execute request: %v", ErrDispatchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: unexpected status code %d", ErrDispatchFailed, resp.StatusCode)
	}

	return nil
}

// DispatchAsync отправляет событие в фоне, не блокируя обработку запроса.
// Используется после успешного бронирования/отмены: контекст запроса
// к этому моменту может быть завершен, поэтому берется собственный таймаут.
func (c *Client) DispatchAsync(event *Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.httpClient.Timeout)
		defer cancel()

		if err := c.Dispatch(ctx, event); err != nil {
			c.log.Error("notifier: failed to dispatch %s for appointment id=%d: %v",
				event.Type, event.AppointmentID, err)
			return
		}
		c.log.Info("notifier: dispatched %s for appointment id=%d", event.Type, event.AppointmentID)
	}()
}
