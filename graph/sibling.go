package graph

import (
	"github.com/opd-ai/audionode/task"
	"github.com/sirupsen/logrus"
)

// Domain tags an instance as living on the control or the render side.
type Domain uint8

const (
	// Control marks the instance driven by non-real-time callers.
	Control Domain = iota
	// Render marks the instance driven by the render tick.
	Render
)

// String returns the domain name.
func (d Domain) String() string {
	switch d {
	case Control:
		return "control"
	case Render:
		return "render"
	default:
		return "unknown"
	}
}

// Identity is shared by both instances of a pair.
type Identity struct {
	Name string
	ID   uint32
}

// Member is implemented by any type that embeds Sibling.
type Member interface {
	sibling() *Sibling
}

// Sibling is the pair bookkeeping embedded in every node type. The zero
// value is an unpaired node; Context.Pair links two of them.
type Sibling struct {
	ctx      *Context
	identity Identity
	domain   Domain
	self     task.Handle
	partner  task.Handle
}

func (s *Sibling) sibling() *Sibling { return s }

// Identity returns the name and ID shared by the pair.
func (s *Sibling) Identity() Identity { return s.identity }

// Domain returns which side of the pair this instance is.
func (s *Sibling) Domain() Domain { return s.domain }

// IsControl reports whether this is the control instance.
func (s *Sibling) IsControl() bool { return s.domain == Control }

// Context returns the graph context the pair belongs to.
func (s *Sibling) Context() *Context { return s.ctx }

// Handle returns this instance's own handle.
func (s *Sibling) Handle() task.Handle { return s.self }

// RenderHandle returns the handle of the pair's render instance.
func (s *Sibling) RenderHandle() task.Handle {
	if s.domain == Render {
		return s.self
	}
	return s.partner
}

// HasSibling reports whether the partner instance is still alive.
func (s *Sibling) HasSibling() bool {
	return s.ctx != nil && !s.partner.IsZero() && s.ctx.registry.Valid(s.partner)
}

// Send queues fn to run against the partner instance on the partner's
// domain. It reports false, releasing any block in args, when the partner
// is gone or the queue is full.
func (s *Sibling) Send(fn task.Func, args task.Args) bool {
	if !s.HasSibling() {
		args.Block.Release()
		return false
	}
	t := task.Task{Target: s.partner, Fn: fn, Args: args}
	if s.domain == Control {
		return s.ctx.toRender.Submit(t)
	}
	return s.ctx.toControl.Submit(t)
}

// Teardown destroys the pair. It is a no-op on render instances and on
// pairs already torn down.
func (s *Sibling) Teardown() {
	if s.domain != Control || s.ctx == nil || s.self.IsZero() {
		return
	}

	partner := s.partner
	s.partner = task.Handle{}
	s.ctx.registry.Release(s.self)
	s.self = task.Handle{}

	if partner.IsZero() {
		return
	}
	if !s.ctx.toRender.Submit(task.Task{Target: partner, Fn: teardownRender}) {
		logrus.WithFields(logrus.Fields{
			"function": "Sibling.Teardown",
			"node":     s.identity.Name,
			"id":       s.identity.ID,
		}).Error("Render queue full, render instance could not be torn down")
		return
	}

	logrus.WithFields(logrus.Fields{
		"function": "Sibling.Teardown",
		"node":     s.identity.Name,
		"id":       s.identity.ID,
	}).Debug("Queued render instance teardown")
}

func teardownRender(target any, _ task.Args) {
	m, ok := target.(Member)
	if !ok {
		return
	}
	s := m.sibling()
	s.ctx.detach(s.self)
	s.ctx.registry.Release(s.self)
	s.self = task.Handle{}
	s.partner = task.Handle{}
}
