package game

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Player represents a connected adventurer in the world.
type Player struct {
	Name       string
	Account    string
	Session    *TelnetSession
	Room       RoomID
	Home       RoomID
	Output     chan string
	IsAdmin    bool
	IsBuilder  bool
	Attributes *Attributes
	JoinedAt   time.Time
	history    []time.Time

	// alive is cleared on logout or takeover from other goroutines.
	alive atomic.Bool

	emitOnce sync.Once
	emitter  Emitter
	logger   *zap.Logger
	metrics  *Metrics
}

// PlayerProfile captures persistent player state.
type PlayerProfile struct {
	Room       RoomID
	Home       RoomID
	Attributes map[string]any
}

const (
	commandLimit  = 5
	commandWindow = time.Second
	outputBuffer  = 64
)

// NewPlayer creates a living player with an empty attribute set and a
// buffered output queue.
func NewPlayer(name string, room RoomID) *Player {
	p := &Player{
		Name:       name,
		Account:    name,
		Room:       room,
		Home:       room,
		Output:     make(chan string, outputBuffer),
		Attributes: NewAttributes(nil),
	}
	p.alive.Store(true)
	return p
}

// Examined reports whether the player has already studied the thing with id.
func (p *Player) Examined(id string) bool {
	seen, _ := p.Attributes.Strings(AttrExamined)
	for _, v := range seen {
		if v == id {
			return true
		}
	}
	return false
}

// Examine records that the player has studied thing and reports whether it
// was the first time. Things are told apart by id, not name.
func (p *Player) Examine(thing Thing) bool {
	if thing.ID == "" || p.Examined(thing.ID) {
		return false
	}
	seen, _ := p.Attributes.Strings(AttrExamined)
	p.Attributes.Set(AttrExamined, append(seen, thing.ID))
	return true
}

// Alive reports whether the player still owns a live session.
func (p *Player) Alive() bool {
	return p.alive.Load()
}

// Attribute implements AttributeReader.
func (p *Player) Attribute(name string) (any, bool) {
	if p == nil {
		return nil, false
	}
	return p.Attributes.Attribute(name)
}

// Gender returns the player's resolved gender.
func (p *Player) Gender() Gender {
	return GenderOf(p)
}

// MsgOption customises a message sent with Msg.
type MsgOption func(*Message)

// WithPrompt attaches a prompt line that replaces the player's prompt.
func WithPrompt(prompt string) MsgOption {
	return func(m *Message) {
		if m.Options == nil {
			m.Options = make(map[string]any)
		}
		m.Options["prompt"] = prompt
	}
}

// WithSender records who originated the message.
func WithSender(name string) MsgOption {
	return func(m *Message) {
		m.From = name
	}
}

// Msg sends text to the player. Pronoun markers in the text refer to the
// player, and "|c"-style markup is rendered to ANSI.
func (p *Player) Msg(text any, opts ...MsgOption) {
	msg := Message{Text: text}
	for _, opt := range opts {
		if opt != nil {
			opt(&msg)
		}
	}
	p.pipeline().Emit(msg)
}

// configureOutput installs the logger and metrics used by the player's
// output pipeline. It must run before the player is published to the world.
func (p *Player) configureOutput(logger *zap.Logger, metrics *Metrics) {
	if logger == nil {
		logger = zap.NewNop()
	}
	p.logger = logger.With(zap.String("player", p.Name))
	p.metrics = metrics
	p.emitter = NewPronounEmitter(EmitterFunc(p.deliver), p, p.logger, metrics)
}

func (p *Player) pipeline() Emitter {
	p.emitOnce.Do(func() {
		if p.emitter == nil {
			p.emitter = NewPronounEmitter(EmitterFunc(p.deliver), p, p.logger, p.metrics)
		}
	})
	return p.emitter
}

// deliver is the player's emission primitive: it applies side-channel
// options and queues the rendered text.
func (p *Player) deliver(msg Message) {
	options := msg.Options
	var text string
	switch v := msg.Text.(type) {
	case nil:
	case string:
		text = v
	case Tuple:
		for i, part := range v {
			if i == 0 {
				text = fmt.Sprint(part)
				continue
			}
			if extra, ok := part.(map[string]any); ok {
				options = mergeOptions(options, extra)
			}
		}
	default:
		text = fmt.Sprint(v)
	}
	if prompt, ok := options["prompt"].(string); ok && p.Attributes != nil {
		p.Attributes.Set("prompt", prompt)
	}
	if text == "" {
		return
	}
	p.send(RenderMarkup(text))
}

func (p *Player) send(out string) {
	defer func() {
		// Output is closed when a session is taken over.
		_ = recover()
	}()
	select {
	case p.Output <- out:
	default:
		p.metrics.messageDropped()
		if p.logger != nil {
			p.logger.Debug("output queue full, dropping message")
		}
	}
}

func mergeOptions(base, extra map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// PromptText returns the custom prompt when one is set and enabled.
func (p *Player) PromptText() string {
	if p.Attributes == nil {
		return ""
	}
	if enabled, ok := p.Attributes.Bool("prompt_enabled"); ok && !enabled {
		return ""
	}
	prompt, _ := p.Attributes.String("prompt")
	return prompt
}

// WindowSize reports the client's terminal dimensions.
func (p *Player) WindowSize() (int, int) {
	if p.Session == nil {
		return 80, 24
	}
	return p.Session.Size()
}

// Profile captures the state persisted between sessions.
func (p *Player) Profile() PlayerProfile {
	profile := PlayerProfile{Room: p.Room, Home: p.Home}
	if p.Attributes != nil {
		profile.Attributes = p.Attributes.Snapshot()
	}
	return profile
}

func (p *Player) allowCommand(now time.Time) bool {
	cutoff := now.Add(-commandWindow)
	filtered := p.history[:0]
	for _, t := range p.history {
		if t.After(cutoff) {
			filtered = append(filtered, t)
		}
	}
	p.history = filtered
	if len(p.history) >= commandLimit {
		return false
	}
	p.history = append(p.history, now)
	return true
}
