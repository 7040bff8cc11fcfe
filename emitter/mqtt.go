// Package emitter publishes exploration targets to an MQTT broker.
package emitter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/katalvlaran/frontier/explore"
)

// Sentinel errors for publishing.
var (
	// ErrNotConnected is returned by Publish before Connect succeeds or after Close.
	ErrNotConnected = errors.New("emitter: mqtt not connected")

	// ErrPublishTimeout indicates the broker did not acknowledge in time.
	ErrPublishTimeout = errors.New("emitter: publish timeout")

	// ErrUnknownCodec indicates a codec name other than json or msgpack.
	ErrUnknownCodec = errors.New("emitter: unknown codec")

	// ErrInvalidConfig indicates an unusable Config.
	ErrInvalidConfig = errors.New("emitter: invalid config")
)

// Codec selects the payload encoding.
type Codec string

// Supported codecs.
const (
	JSON    Codec = "json"
	MsgPack Codec = "msgpack"
)

// ParseCodec validates a codec name.
func ParseCodec(s string) (Codec, error) {
	switch c := Codec(s); c {
	case JSON, MsgPack:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCodec, s)
}

// Marshal encodes v.
func (c Codec) Marshal(v any) ([]byte, error) {
	switch c {
	case JSON:
		return json.Marshal(v)
	case MsgPack:
		return msgpack.Marshal(v)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, string(c))
}

// Config describes the broker connection and topic layout.
type Config struct {
	// Broker is a URL such as tcp://localhost:1883.
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"client_id"`
	// TopicPrefix starts every topic: <prefix>/<session>/target.
	TopicPrefix string        `yaml:"topic_prefix"`
	QoS         byte          `yaml:"qos"`
	Retain      bool          `yaml:"retain"`
	Codec       string        `yaml:"codec"`
	Timeout     time.Duration `yaml:"timeout"`
}

// DefaultConfig targets a local broker with JSON payloads at QoS 1.
func DefaultConfig() Config {
	return Config{
		Broker:      "tcp://localhost:1883",
		ClientID:    "frontier",
		TopicPrefix: "frontier",
		QoS:         1,
		Codec:       string(JSON),
		Timeout:     2 * time.Second,
	}
}

// Validate reports ErrInvalidConfig or ErrUnknownCodec.
func (c Config) Validate() error {
	switch {
	case c.Broker == "":
		return fmt.Errorf("%w: empty broker", ErrInvalidConfig)
	case c.TopicPrefix == "":
		return fmt.Errorf("%w: empty topic prefix", ErrInvalidConfig)
	case c.QoS > 2:
		return fmt.Errorf("%w: qos %d", ErrInvalidConfig, c.QoS)
	case c.Timeout <= 0:
		return fmt.Errorf("%w: timeout %v", ErrInvalidConfig, c.Timeout)
	}
	_, err := ParseCodec(c.Codec)
	return err
}

// Topic returns the topic targets of a session are published on.
func (c Config) Topic(sessionID string) string {
	return fmt.Sprintf("%s/%s/target", c.TopicPrefix, sessionID)
}

// client is the part of mqtt.Client the emitter uses.
type client interface {
	Connect() mqtt.Token
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
	IsConnected() bool
}

// Stats counts publish outcomes.
type Stats struct {
	Connected bool
	Published uint64
	Errors    uint64
}

// MQTT publishes targets; it implements explore.Publisher.
type MQTT struct {
	cfg   Config
	codec Codec
	c     client
	log   logrus.FieldLogger

	mu        sync.RWMutex
	connected bool
	published uint64
	errors    uint64
}

var _ explore.Publisher = (*MQTT)(nil)

// New validates cfg and prepares a paho client. Nothing is dialled until Connect.
func New(cfg Config, log logrus.FieldLogger) (*MQTT, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := newMQTT(cfg, log)

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(cfg.Timeout)
	opts.SetMaxReconnectInterval(30 * time.Second)
	opts.SetOnConnectHandler(func(mqtt.Client) {
		e.setConnected(true)
		e.log.WithField("broker", cfg.Broker).Info("mqtt connection established")
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		e.setConnected(false)
		e.log.WithError(err).Warn("mqtt connection lost, will auto-reconnect")
	})
	e.c = mqtt.NewClient(opts)
	return e, nil
}

func newMQTT(cfg Config, log logrus.FieldLogger) *MQTT {
	if log == nil {
		log = logrus.StandardLogger()
	}
	codec, _ := ParseCodec(cfg.Codec)
	return &MQTT{
		cfg:   cfg,
		codec: codec,
		log:   log.WithFields(logrus.Fields{"component": "emitter", "broker": cfg.Broker}),
	}
}

// Connect dials the broker and waits for the handshake.
func (e *MQTT) Connect(ctx context.Context) error {
	e.log.Info("connecting to mqtt broker")
	if err := e.wait(ctx, e.c.Connect()); err != nil {
		return fmt.Errorf("emitter: connect %s: %w", e.cfg.Broker, err)
	}
	e.setConnected(true)
	return nil
}

// Publish encodes t and sends it to Config.Topic(t.SessionID).
func (e *MQTT) Publish(ctx context.Context, t explore.Target) error {
	if !e.isConnected() {
		e.fail()
		return ErrNotConnected
	}
	payload, err := e.codec.Marshal(t)
	if err != nil {
		e.fail()
		return fmt.Errorf("emitter: marshal target: %w", err)
	}
	topic := e.cfg.Topic(t.SessionID)
	if err := e.wait(ctx, e.c.Publish(topic, e.cfg.QoS, e.cfg.Retain, payload)); err != nil {
		e.fail()
		return fmt.Errorf("emitter: publish %s: %w", topic, err)
	}

	e.mu.Lock()
	e.published++
	e.mu.Unlock()
	e.log.WithFields(logrus.Fields{"topic": topic, "size": len(payload)}).Debug("target published")
	return nil
}

// Close disconnects with a 250 ms grace period.
func (e *MQTT) Close() {
	if e.isConnected() || e.c.IsConnected() {
		e.c.Disconnect(250)
		e.log.Info("mqtt disconnected")
	}
	e.setConnected(false)
}

// Stats returns publish counters.
func (e *MQTT) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Stats{Connected: e.connected, Published: e.published, Errors: e.errors}
}

// wait blocks until tok completes, ctx is done or the configured timeout passes.
func (e *MQTT) wait(ctx context.Context, tok mqtt.Token) error {
	timer := time.NewTimer(e.cfg.Timeout)
	defer timer.Stop()
	select {
	case <-tok.Done():
		return tok.Error()
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrPublishTimeout
	}
}

func (e *MQTT) fail() {
	e.mu.Lock()
	e.errors++
	e.mu.Unlock()
}

func (e *MQTT) setConnected(v bool) {
	e.mu.Lock()
	e.connected = v
	e.mu.Unlock()
}

func (e *MQTT) isConnected() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.connected
}
