package cloud

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"home_automation/internal/logger"
)

const (
	QoS = 1

	eventBuffer    = 64
	publishTimeout = 5 * time.Second
)

var (
	ErrPublishTimeout   = errors.New("publish timed out")
	ErrSubscribeTimeout = errors.New("subscribe timed out")
)

type EventKind int

const (
	EventConnected EventKind = iota + 1
	EventDisconnected
	EventCommand
)

func (k EventKind) String() string {
	switch k {
	case EventConnected:
		return "connected"
	case EventDisconnected:
		return "disconnected"
	case EventCommand:
		return "command"
	default:
		return "unknown"
	}
}

// Event is one callback from the dashboard link, delivered in arrival order.
type Event struct {
	Kind   EventKind
	PingMs int    // EventConnected
	Pin    int    // EventCommand
	Value  string // EventCommand, raw payload
}

type Options struct {
	Broker         string
	ClientID       string
	Username       string
	Password       string
	TopicPrefix    string
	ConnectTimeout time.Duration
}

// conn is the subset of mqtt.Client used after the session is up.
type conn interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token
}

// Bridge connects the controller to the dashboard broker. Callbacks from paho
// are turned into Events on a single channel so the controller loop sees them
// one at a time.
type Bridge struct {
	client  mqtt.Client
	conn    conn
	topics  Topics
	timeout time.Duration
	log     *logger.Logger

	events chan Event
	done   chan struct{}
	once   sync.Once

	mu        sync.Mutex
	attemptAt time.Time
	now       func() time.Time
}

func NewBridge(opts Options, log *logger.Logger) *Bridge {
	b := &Bridge{
		topics:  Topics{Prefix: opts.TopicPrefix},
		timeout: opts.ConnectTimeout,
		log:     log,
		events:  make(chan Event, eventBuffer),
		done:    make(chan struct{}),
		now:     time.Now,
	}

	co := mqtt.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetAutoReconnect(true).
		SetOrderMatters(true).
		SetConnectTimeout(opts.ConnectTimeout).
		SetWill(b.topics.Status(), statusOffline, QoS, true).
		SetConnectionAttemptHandler(b.onAttempt).
		SetOnConnectHandler(b.onConnect).
		SetConnectionLostHandler(b.onConnectionLost).
		SetReconnectingHandler(func(mqtt.Client, *mqtt.ClientOptions) {
			b.log.Infow("cloud_reconnecting", "broker", opts.Broker)
		})
	if opts.Username != "" {
		co.SetUsername(opts.Username).SetPassword(opts.Password)
	}

	b.client = mqtt.NewClient(co)
	b.conn = b.client
	return b
}

// Events returns the channel the controller loop drains.
func (b *Bridge) Events() <-chan Event { return b.events }

// Connect performs the first handshake; failure here is fatal for the caller.
func (b *Bridge) Connect() error {
	token := b.client.Connect()
	if !token.WaitTimeout(b.timeout) {
		return fmt.Errorf("cloud connect: no answer within %s", b.timeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("cloud connect: %w", err)
	}
	return nil
}

func (b *Bridge) Close() {
	b.once.Do(func() {
		close(b.done)
		if b.client.IsConnected() {
			_ = b.publish(b.topics.Status(), true, statusOffline)
		}
		b.client.Disconnect(250)
	})
}

// WriteDisplay sends a status line to the dashboard's display widget.
func (b *Bridge) WriteDisplay(text string) error {
	return b.publish(b.topics.Pin(DisplayPin), false, text)
}

func (b *Bridge) WriteTelemetry(pin int, value string) error {
	return b.publish(b.topics.Pin(pin), false, value)
}

// RequestResync asks the dashboard to replay the stored values of pins.
func (b *Bridge) RequestResync(pins []int) error {
	return b.publish(b.topics.Sync(), false, SyncPayload(pins))
}

func (b *Bridge) publish(topic string, retained bool, payload string) error {
	token := b.conn.Publish(topic, QoS, retained, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("%s: %w", topic, ErrPublishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%s: %w", topic, err)
	}
	return nil
}

func (b *Bridge) onAttempt(_ *url.URL, tlsCfg *tls.Config) *tls.Config {
	b.mu.Lock()
	b.attemptAt = b.now()
	b.mu.Unlock()
	return tlsCfg
}

func (b *Bridge) pingMs() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.attemptAt.IsZero() {
		return 0
	}
	return int(b.now().Sub(b.attemptAt).Milliseconds())
}

func (b *Bridge) subscribe() error {
	token := b.conn.Subscribe(b.topics.Command(), QoS, b.onMessage)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("%s: %w", b.topics.Command(), ErrSubscribeTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%s: %w", b.topics.Command(), err)
	}
	return nil
}

func (b *Bridge) onConnect(_ mqtt.Client) {
	ping := b.pingMs()
	if err := b.subscribe(); err != nil {
		// no channel commands arrive until the next reconnect
		b.log.Errorw("cloud_subscribe_failed", "topic", b.topics.Command(), "err", err)
	}
	if err := b.publish(b.topics.Status(), true, statusOnline); err != nil {
		b.log.Errorw("cloud_status_publish_failed", "err", err)
	}
	b.log.Infow("cloud_connected", "ping_ms", ping)
	b.emit(Event{Kind: EventConnected, PingMs: ping})
}

func (b *Bridge) onConnectionLost(_ mqtt.Client, err error) {
	b.log.Errorw("cloud_connection_lost", "err", err)
	b.emit(Event{Kind: EventDisconnected})
}

func (b *Bridge) onMessage(_ mqtt.Client, msg mqtt.Message) {
	pin, ok := b.topics.PinFromTopic(msg.Topic())
	if !ok {
		b.log.Errorw("cloud_invalid_topic", "topic", msg.Topic())
		return
	}
	b.emit(Event{Kind: EventCommand, Pin: pin, Value: string(msg.Payload())})
}

func (b *Bridge) emit(ev Event) {
	select {
	case b.events <- ev:
	case <-b.done:
	}
}
