// Package service publishes activity events to RabbitMQ. Publish only
// queues the event; a background worker owns the broker connection and
// logs delivery failures.
package service

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "log/slog"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    "github.com/iliyamo/fyyur/internal/config"
    "github.com/iliyamo/fyyur/internal/logger/sl"
    "github.com/iliyamo/fyyur/internal/queue"
)

var (
    // ErrBufferFull is returned by Publish when the worker is behind.
    ErrBufferFull = errors.New("service: event buffer full")
    // ErrBrokerDown is returned while a failed dial is being backed off.
    ErrBrokerDown = errors.New("service: broker unavailable")
)

// Publisher sends events to the configured queue on the default exchange.
// A disabled Publisher drops every event.
type Publisher struct {
    enabled bool
    url     string
    queue   string
    timeout time.Duration // dial and publish
    retry   time.Duration // pause after a failed dial
    log     *slog.Logger
    events  chan queue.ActivityEvent
    now     func() time.Time

    // owned by the Run goroutine
    conn      *amqp.Connection
    ch        *amqp.Channel
    downUntil time.Time
}

// NewPublisher returns a publisher for cfg. Run must be started for queued
// events to reach the broker.
func NewPublisher(cfg config.EventsConfig, log *slog.Logger) *Publisher {
    buf := cfg.Buffer
    if buf <= 0 {
        buf = 256
    }
    return &Publisher{
        enabled: cfg.Enabled,
        url:     cfg.URL,
        queue:   cfg.Queue,
        timeout: 3 * time.Second,
        retry:   10 * time.Second,
        log:     log.With(slog.String("op", "service.Publisher")),
        events:  make(chan queue.ActivityEvent, buf),
        now:     time.Now,
    }
}

// Publish queues ev without blocking.
func (p *Publisher) Publish(_ context.Context, ev queue.ActivityEvent) error {
    if p == nil || !p.enabled {
        return nil
    }
    select {
    case p.events <- ev:
        return nil
    default:
        return ErrBufferFull
    }
}

// Run delivers queued events until ctx is cancelled. Events still queued at
// that point get one more attempt bounded by the publish timeout, then the
// connection is closed.
func (p *Publisher) Run(ctx context.Context) {
    if p == nil || !p.enabled {
        return
    }
    defer p.close()
    for {
        select {
        case ev := <-p.events:
            p.deliver(ctx, ev)
        case <-ctx.Done():
            p.drain()
            return
        }
    }
}

func (p *Publisher) drain() {
    ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
    defer cancel()
    for {
        select {
        case ev := <-p.events:
            p.deliver(ctx, ev)
        default:
            return
        }
    }
}

// deliver sends one event and logs the outcome.
func (p *Publisher) deliver(ctx context.Context, ev queue.ActivityEvent) {
    if err := p.send(ctx, ev); err != nil {
        p.log.Warn("publish failed", sl.Err(err), slog.String("event", ev.Type), slog.String("event_id", ev.ID))
        return
    }
    p.log.Debug("event published", slog.String("event", ev.Type), slog.String("event_id", ev.ID))
}

// send publishes ev as a persistent JSON message on the shared channel,
// dialing first when there is none.
func (p *Publisher) send(ctx context.Context, ev queue.ActivityEvent) error {
    if err := p.connect(); err != nil {
        return err
    }

    body, err := json.Marshal(ev)
    if err != nil {
        return fmt.Errorf("marshal event: %w", err)
    }
    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent, // store on disk
        MessageId:    ev.ID,
        Type:         ev.Type,
        Timestamp:    p.now().UTC(),
        Body:         body,
    }

    ctx, cancel := context.WithTimeout(ctx, p.timeout)
    defer cancel()
    if err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
        p.close()
        return fmt.Errorf("publish: %w", err)
    }
    return nil
}

// connect makes sure a usable channel exists. After a failed dial it
// refuses to dial again until the retry pause has passed.
func (p *Publisher) connect() error {
    if p.ch != nil && !p.ch.IsClosed() && !p.conn.IsClosed() {
        return nil
    }
    p.close()
    if p.now().Before(p.downUntil) {
        return ErrBrokerDown
    }

    conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: amqp.DefaultDial(p.timeout)})
    if err != nil {
        p.downUntil = p.now().Add(p.retry)
        return fmt.Errorf("dial: %w", err)
    }
    ch, err := conn.Channel()
    if err != nil {
        _ = conn.Close()
        p.downUntil = p.now().Add(p.retry)
        return fmt.Errorf("open channel: %w", err)
    }
    // durable so messages survive broker restarts
    if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
        _ = ch.Close()
        _ = conn.Close()
        p.downUntil = p.now().Add(p.retry)
        return fmt.Errorf("declare queue: %w", err)
    }
    p.conn, p.ch = conn, ch
    return nil
}

func (p *Publisher) close() {
    if p.ch != nil {
        _ = p.ch.Close()
        p.ch = nil
    }
    if p.conn != nil {
        _ = p.conn.Close()
        p.conn = nil
    }
}
