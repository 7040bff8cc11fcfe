package emitter

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"sync"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/katalvlaran/frontier/explore"
)

type fakeToken struct {
	done chan struct{}
	err  error
}

func finished(err error) *fakeToken {
	d := make(chan struct{})
	close(d)
	return &fakeToken{done: d, err: err}
}

func pending() *fakeToken { return &fakeToken{done: make(chan struct{})} }

func (t *fakeToken) Wait() bool { <-t.done; return true }

func (t *fakeToken) WaitTimeout(d time.Duration) bool {
	select {
	case <-t.done:
		return true
	case <-time.After(d):
		return false
	}
}

func (t *fakeToken) Done() <-chan struct{} { return t.done }
func (t *fakeToken) Error() error          { return t.err }

type message struct {
	topic    string
	qos      byte
	retained bool
	payload  []byte
}

type fakeClient struct {
	mu        sync.Mutex
	connected bool
	connect   mqtt.Token
	publish   mqtt.Token
	sent      []message
}

func (c *fakeClient) Connect() mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = true
	if c.connect != nil {
		return c.connect
	}
	return finished(nil)
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, message{topic, qos, retained, payload.([]byte)})
	if c.publish != nil {
		return c.publish
	}
	return finished(nil)
}

func (c *fakeClient) Disconnect(uint) {
	c.mu.Lock()
	c.connected = false
	c.mu.Unlock()
}

func (c *fakeClient) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

var target = explore.Target{
	SessionID: "s-1",
	Cell:      image.Pt(9, 10),
	X:         -0.15,
	Distance:  1,
	At:        time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
}

func newTestMQTT(t *testing.T, cfg Config, c *fakeClient) *MQTT {
	t.Helper()
	require.NoError(t, cfg.Validate())
	log, _ := test.NewNullLogger()
	e := newMQTT(cfg, log)
	e.c = c
	return e
}

// TestConfig_Validate covers every rejected field.
func TestConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cases := map[string]struct {
		mut  func(*Config)
		want error
	}{
		"broker":  {func(c *Config) { c.Broker = "" }, ErrInvalidConfig},
		"prefix":  {func(c *Config) { c.TopicPrefix = "" }, ErrInvalidConfig},
		"qos":     {func(c *Config) { c.QoS = 3 }, ErrInvalidConfig},
		"timeout": {func(c *Config) { c.Timeout = 0 }, ErrInvalidConfig},
		"codec":   {func(c *Config) { c.Codec = "xml" }, ErrUnknownCodec},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c := DefaultConfig()
			tc.mut(&c)
			assert.ErrorIs(t, c.Validate(), tc.want)
			_, err := New(c, nil)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	assert.Equal(t, "frontier/s-1/target", DefaultConfig().Topic("s-1"))
}

// TestNew builds a paho client without dialling.
func TestNew(t *testing.T) {
	e, err := New(DefaultConfig(), nil)
	require.NoError(t, err)
	assert.False(t, e.Stats().Connected)
	assert.ErrorIs(t, e.Publish(context.Background(), target), ErrNotConnected)
	e.Close()
}

// TestCodecs checks both payload encodings.
func TestCodecs(t *testing.T) {
	b, err := JSON.Marshal(target)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "s-1", m["session_id"])
	assert.Equal(t, map[string]any{"X": 9.0, "Y": 10.0}, m["cell"])
	assert.Equal(t, 1.0, m["distance"])
	assert.Equal(t, "2024-05-01T12:00:00Z", m["at"])

	b, err = MsgPack.Marshal(target)
	require.NoError(t, err)
	var back explore.Target
	require.NoError(t, msgpack.Unmarshal(b, &back))
	assert.True(t, target.At.Equal(back.At))
	back.At = target.At
	assert.Equal(t, target, back)

	_, err = Codec("xml").Marshal(target)
	assert.ErrorIs(t, err, ErrUnknownCodec)
	_, err = ParseCodec("yaml")
	assert.ErrorIs(t, err, ErrUnknownCodec)
}

// TestMQTT_Publish connects and publishes to the session topic.
func TestMQTT_Publish(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Retain = true
	cfg.Codec = string(MsgPack)
	c := &fakeClient{}
	e := newTestMQTT(t, cfg, c)

	assert.ErrorIs(t, e.Publish(context.Background(), target), ErrNotConnected)
	require.NoError(t, e.Connect(context.Background()))
	require.NoError(t, e.Publish(context.Background(), target))

	require.Len(t, c.sent, 1)
	assert.Equal(t, "frontier/s-1/target", c.sent[0].topic)
	assert.Equal(t, byte(1), c.sent[0].qos)
	assert.True(t, c.sent[0].retained)
	var back explore.Target
	require.NoError(t, msgpack.Unmarshal(c.sent[0].payload, &back))
	assert.Equal(t, target.Cell, back.Cell)

	assert.Equal(t, Stats{Connected: true, Published: 1, Errors: 1}, e.Stats())

	e.Close()
	assert.False(t, c.IsConnected())
	assert.ErrorIs(t, e.Publish(context.Background(), target), ErrNotConnected)
}

// TestMQTT_Failures covers broker errors, timeouts and cancellation.
func TestMQTT_Failures(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timeout = 20 * time.Millisecond

	c := &fakeClient{connect: finished(errors.New("not authorized"))}
	e := newTestMQTT(t, cfg, c)
	err := e.Connect(context.Background())
	assert.ErrorContains(t, err, "not authorized")
	assert.False(t, e.Stats().Connected)

	c = &fakeClient{publish: pending()}
	e = newTestMQTT(t, cfg, c)
	require.NoError(t, e.Connect(context.Background()))
	assert.ErrorIs(t, e.Publish(context.Background(), target), ErrPublishTimeout)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg.Timeout = time.Minute
	e = newTestMQTT(t, cfg, &fakeClient{publish: pending()})
	require.NoError(t, e.Connect(context.Background()))
	assert.ErrorIs(t, e.Publish(ctx, target), context.Canceled)
	assert.Equal(t, uint64(1), e.Stats().Errors)
}
