package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "log/slog"
    "os"
    "path/filepath"
    "sync"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    "github.com/iliyamo/fyyur/internal/config"
    "github.com/iliyamo/fyyur/internal/logger/sl"
)

// Notifier announces new shows.
type Notifier interface {
    Notify(ctx context.Context, text string) error
}

// Consumer reads activity events from the queue, appends each one to the
// activity log and forwards show.created events to the notifier.
type Consumer struct {
    url      string
    queue    string
    logPath  string
    notifier Notifier
    log      *slog.Logger

    mu sync.Mutex // serialises appends to logPath
}

// NewConsumer builds a consumer from cfg. notifier may be nil.
func NewConsumer(cfg config.EventsConfig, notifier Notifier, log *slog.Logger) *Consumer {
    return &Consumer{
        url:      cfg.URL,
        queue:    cfg.Queue,
        logPath:  cfg.ActivityLog,
        notifier: notifier,
        log:      log.With(slog.String("op", "queue.Consumer")),
    }
}

// Run connects to the broker and consumes until ctx is cancelled. Failed
// dials back off exponentially from one second up to thirty.
func (c *Consumer) Run(ctx context.Context) error {
    backoff := time.Second
    for {
        conn, err := amqp.Dial(c.url)
        if err != nil {
            c.log.Warn("failed to dial broker", sl.Err(err), slog.Duration("retry_in", backoff))
            if !sleep(ctx, backoff) {
                return ctx.Err()
            }
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second // reset after successful connect

        err = c.consumeLoop(ctx, conn)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        c.log.Warn("consume loop ended, reconnecting", sl.Err(err))
        if !sleep(ctx, 2*time.Second) {
            return ctx.Err()
        }
    }
}

func sleep(ctx context.Context, d time.Duration) bool {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return false
    case <-t.C:
        return true
    }
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        c.log.Warn("set QoS failed", sl.Err(err))
    }
    if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    msgs, err := ch.ConsumeWithContext(ctx, c.queue, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for {
        select {
        case <-ctx.Done():
            return ctx.Err()
        case d, ok := <-msgs:
            if !ok {
                return errors.New("deliveries channel closed")
            }
            if err := c.HandleMessage(ctx, d.Body); err != nil {
                c.log.Error("handle message failed", sl.Err(err), slog.String("message_id", d.MessageId))
                _ = d.Nack(false, false) // drop without requeue
                continue
            }
            _ = d.Ack(false)
        }
    }
}

// HandleMessage decodes one event, appends it to the activity log and
// announces new shows. A notifier failure is logged but does not fail the
// message.
func (c *Consumer) HandleMessage(ctx context.Context, body []byte) error {
    var ev ActivityEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if ev.Type == "" {
        return errors.New("event without type")
    }
    if err := c.appendLine(ev.Line()); err != nil {
        return err
    }
    if ev.Type == ShowCreated && c.notifier != nil {
        if err := c.notifier.Notify(ctx, Announcement(ev)); err != nil {
            c.log.Warn("notify failed", sl.Err(err), slog.String("event_id", ev.ID))
        }
    }
    return nil
}

func (c *Consumer) appendLine(line string) error {
    c.mu.Lock()
    defer c.mu.Unlock()

    if dir := filepath.Dir(c.logPath); dir != "." {
        if err := os.MkdirAll(dir, 0o755); err != nil {
            return fmt.Errorf("mkdir %s: %w", dir, err)
        }
    }
    f, err := os.OpenFile(c.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()
    if _, err := f.WriteString(line); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}

// Announcement is the chat text for a show.created event.
func Announcement(ev ActivityEvent) string {
    text := "New show listed: " + ev.Name
    if ev.Detail != "" {
        text += " (" + ev.Detail + ")"
    }
    return text
}
