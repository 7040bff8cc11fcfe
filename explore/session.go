// Package explore keeps the live map of one exploration run and answers
// "where is the nearest unknown cell?" for the robot's current pose.
//
// A Session is safe for concurrent use: sweeps take the write lock, searches
// the read lock for their whole run, so a search never sees a half-applied
// sweep.
package explore

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/frontier/frontier"
	"github.com/katalvlaran/frontier/laser"
	"github.com/katalvlaran/frontier/occgrid"
	"github.com/katalvlaran/frontier/transform"
)

// Sentinel errors for session operations.
var (
	// ErrPoseOutsideMap indicates a robot pose that falls outside the grid.
	ErrPoseOutsideMap = errors.New("explore: pose outside map")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("explore: invalid option supplied")
)

// Target is the answer to one Nearest call.
//
// When Explored is true nothing reachable is unknown and Cell, X, Y and
// Distance are zero.
type Target struct {
	SessionID string      `json:"session_id" msgpack:"session_id"`
	Explored  bool        `json:"explored" msgpack:"explored"`
	Cell      image.Point `json:"cell" msgpack:"cell"`
	// X, Y is the centre of Cell in world metres.
	X        float64   `json:"x" msgpack:"x"`
	Y        float64   `json:"y" msgpack:"y"`
	Distance int       `json:"distance" msgpack:"distance"`
	At       time.Time `json:"at" msgpack:"at"`
}

// Publisher forwards targets to the outside world.
type Publisher interface {
	Publish(ctx context.Context, t Target) error
}

// Option configures a Session via functional arguments.
type Option func(*SessionOptions)

// SessionOptions holds the collaborators of a Session.
type SessionOptions struct {
	Logger    logrus.FieldLogger
	Publisher Publisher
	// Mapper holds laser.Mapper options.
	Mapper []laser.Option
	// Trace forwards frontier debug traces to Logger.
	Trace bool
	// ID fixes the session ID; a random one is drawn when zero.
	ID uuid.UUID
	// Clock stamps targets.
	Clock func() time.Time

	err error
}

// DefaultSessionOptions logs to the standard logrus logger and publishes nothing.
func DefaultSessionOptions() SessionOptions {
	return SessionOptions{Logger: logrus.StandardLogger(), Clock: time.Now}
}

// WithLogger sets the logger; nil is ignored.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *SessionOptions) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithPublisher forwards every target to p; nil is ignored.
func WithPublisher(p Publisher) Option {
	return func(o *SessionOptions) {
		if p != nil {
			o.Publisher = p
		}
	}
}

// WithMapperOptions passes options to the session's laser.Mapper.
func WithMapperOptions(opts ...laser.Option) Option {
	return func(o *SessionOptions) { o.Mapper = append(o.Mapper, opts...) }
}

// WithTrace enables frontier debug traces.
func WithTrace(on bool) Option {
	return func(o *SessionOptions) { o.Trace = on }
}

// WithID fixes the session ID.
func WithID(id uuid.UUID) Option {
	return func(o *SessionOptions) {
		if id == uuid.Nil {
			o.err = fmt.Errorf("%w: nil session id", ErrOptionViolation)
			return
		}
		o.ID = id
	}
}

// WithClock replaces time.Now for target timestamps; nil is ignored.
func WithClock(now func() time.Time) Option {
	return func(o *SessionOptions) {
		if now != nil {
			o.Clock = now
		}
	}
}

// Session is the live map of one exploration run.
type Session struct {
	mu     sync.RWMutex
	grid   *occgrid.Grid
	mapper *laser.Mapper

	id    uuid.UUID
	log   logrus.FieldLogger
	opts  SessionOptions
	pool  sync.Pool // *frontier.Searcher
	frame transform.Frame
}

// New starts a session with a fully unknown map laid out by frame.
func New(frame transform.Frame, model laser.Model, opts ...Option) (*Session, error) {
	o := DefaultSessionOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	m, err := laser.NewMapper(frame, model, o.Mapper...)
	if err != nil {
		return nil, err
	}
	g, err := occgrid.New(frame.Width, frame.Height)
	if err != nil {
		return nil, err
	}
	id := o.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	s := &Session{
		grid:   g,
		mapper: m,
		id:     id,
		opts:   o,
		frame:  frame,
		log: o.Logger.WithFields(logrus.Fields{
			"component": "explore",
			"session":   id.String(),
		}),
	}
	s.pool.New = func() any { return frontier.NewSearcher() }
	s.log.WithField("grid", fmt.Sprintf("%dx%d", frame.Width, frame.Height)).Info("session started")
	return s, nil
}

// ID returns the session ID.
func (s *Session) ID() uuid.UUID { return s.id }

// Frame returns the world-to-grid mapping of the session map.
func (s *Session) Frame() transform.Frame { return s.frame }

// Update integrates one sweep taken at pose.
func (s *Session) Update(pose transform.Pose, scan laser.Scan) (laser.Stats, error) {
	s.mu.Lock()
	st, err := s.mapper.Integrate(s.grid, pose, scan)
	s.mu.Unlock()
	if err != nil {
		return st, err
	}
	s.log.WithFields(logrus.Fields{
		"beams": st.Beams, "discarded": st.Discarded, "walls": st.Walls, "seen": st.Seen,
	}).Debug("sweep integrated")
	return st, nil
}

// Nearest searches for the unknown cell nearest to pose.
//
// Returns ErrPoseOutsideMap, or a wrapped frontier error when the pose sits
// on a wall. A configured Publisher receives the target; its failure is
// logged and does not fail the call.
func (s *Session) Nearest(ctx context.Context, pose transform.Pose) (Target, error) {
	x, y, ok := s.frame.Locate(pose.X, pose.Y)
	if !ok {
		return Target{}, fmt.Errorf("%w: (%.3f, %.3f) -> cell (%d,%d)", ErrPoseOutsideMap, pose.X, pose.Y, x, y)
	}

	var searchOpts []frontier.Option
	if s.opts.Trace {
		searchOpts = append(searchOpts, frontier.WithLogger(s.log))
	}
	sr := s.pool.Get().(*frontier.Searcher)
	s.mu.RLock()
	res, err := sr.Search(s.grid, x, y, searchOpts...)
	s.mu.RUnlock()
	s.pool.Put(sr)
	if err != nil {
		return Target{}, fmt.Errorf("explore: search from (%d,%d): %w", x, y, err)
	}

	t := Target{SessionID: s.id.String(), Explored: res.Explored(), At: s.opts.Clock()}
	if res.Found {
		t.Cell = res.Nearest.Point()
		t.X, t.Y = s.frame.ToWorld(t.Cell.X, t.Cell.Y)
		t.Distance = res.Nearest.Distance
	}
	s.log.WithFields(logrus.Fields{
		"origin":   res.Origin,
		"explored": t.Explored,
		"cell":     t.Cell,
		"distance": t.Distance,
		"spans":    res.Stats.Spans,
	}).Debug("nearest unknown")

	if p := s.opts.Publisher; p != nil {
		if perr := p.Publish(ctx, t); perr != nil {
			s.log.WithError(perr).Warn("publish target failed")
		}
	}
	return t, nil
}

// Snapshot returns a copy of the current map.
func (s *Session) Snapshot() *occgrid.Grid {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid.Clone()
}

// Pockets lists the unknown regions of the current map, largest first.
func (s *Session) Pockets(conn occgrid.Connectivity) []occgrid.Pocket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid.UnknownPockets(conn)
}

// Counts tallies the current map.
func (s *Session) Counts() occgrid.Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid.Counts()
}
