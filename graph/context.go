package graph

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/opd-ai/audionode/buffer"
	"github.com/opd-ai/audionode/task"
	"github.com/sirupsen/logrus"
)

// InputSource supplies a node's accumulated input for one tick. It fills
// dst with interleaved samples and reports whether any input was present.
type InputSource interface {
	AccumulateInputSamples(dst []float64, channels int) bool
}

// Renderer is implemented by the render instance of a node. It writes the
// node's output for this tick into out and reports whether out holds valid
// output. firstRequest is true for the first request of a tick.
type Renderer interface {
	RenderSamples(out []float64, channels int, input InputSource, firstRequest bool) bool
}

// Connectable is a node whose render instance can be attached to the tick.
type Connectable interface {
	RenderHandle() task.Handle
}

// OutputSink receives every tick rendered by Start.
type OutputSink func(samples []float64, valid bool)

type terminal struct {
	handle task.Handle
	node   Renderer
	input  InputSource
}

// Context owns the two task queues, the handle registry and the block pool
// shared by every node pair, and drives the render tick.
type Context struct {
	options   Options
	registry  *task.Registry
	toRender  *task.Queue
	toControl *task.Queue
	pool      *buffer.Pool
	nextID    atomic.Uint32

	// Render domain only.
	terminals []terminal
	scratch   []float64

	renderTicks   atomic.Uint64
	controlTicks  atomic.Uint64
	poolExhausted atomic.Uint64

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewContext creates a graph context. A nil opts uses NewOptions.
func NewContext(opts *Options) (*Context, error) {
	if opts == nil {
		opts = NewOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid graph options: %w", err)
	}

	registry, err := task.NewRegistry(opts.MaxNodes)
	if err != nil {
		return nil, err
	}
	toRender, err := task.NewQueue("control->render", opts.QueueCapacity, registry)
	if err != nil {
		return nil, err
	}
	toControl, err := task.NewQueue("render->control", opts.QueueCapacity, registry)
	if err != nil {
		return nil, err
	}
	pool, err := buffer.NewPool(opts.BlockPoolSize, opts.BufferSamples())
	if err != nil {
		return nil, err
	}

	c := &Context{
		options:   *opts,
		registry:  registry,
		toRender:  toRender,
		toControl: toControl,
		pool:      pool,
		scratch:   make([]float64, opts.BufferSamples()),
	}

	logrus.WithFields(logrus.Fields{
		"function":          "NewContext",
		"sample_rate":       opts.SampleRate,
		"channels":          opts.Channels,
		"frames_per_buffer": opts.FramesPerBuffer,
		"queue_capacity":    opts.QueueCapacity,
		"block_pool_size":   opts.BlockPoolSize,
	}).Info("Audio graph context created")

	return c, nil
}

// Options returns a copy of the context options.
func (c *Context) Options() Options {
	return c.options
}

// Pair links control and render into a sibling pair named name and
// registers both with the context.
func (c *Context) Pair(name string, control, render Member) error {
	if control == nil || render == nil || control == render {
		return ErrInvalidPair
	}

	id := c.nextID.Add(1)
	cs, rs := control.sibling(), render.sibling()

	hc, err := c.registry.Register(control)
	if err != nil {
		return fmt.Errorf("register control instance: %w", err)
	}
	hr, err := c.registry.Register(render)
	if err != nil {
		c.registry.Release(hc)
		return fmt.Errorf("register render instance: %w", err)
	}

	identity := Identity{Name: name, ID: id}
	*cs = Sibling{ctx: c, identity: identity, domain: Control, self: hc, partner: hr}
	*rs = Sibling{ctx: c, identity: identity, domain: Render, self: hr, partner: hc}

	logrus.WithFields(logrus.Fields{
		"function": "Context.Pair",
		"node":     name,
		"id":       id,
	}).Debug("Node pair created")

	return nil
}

// AcquireBlock takes a block for render→control hand-off, or returns nil
// when the pool is exhausted. Safe on the render path.
func (c *Context) AcquireBlock() *buffer.Block {
	b := c.pool.Get()
	if b == nil {
		c.poolExhausted.Add(1)
	}
	return b
}

// Connect attaches node's render instance to the render tick with input as
// its input source. The attachment takes effect on the next render tick.
func (c *Context) Connect(node Connectable, input InputSource) bool {
	h := node.RenderHandle()
	if h.IsZero() {
		return false
	}
	return c.toRender.Submit(task.Task{Target: h, Fn: attachRender, Args: task.Args{Value: input}})
}

// Disconnect detaches node's render instance from the render tick.
func (c *Context) Disconnect(node Connectable) bool {
	h := node.RenderHandle()
	if h.IsZero() {
		return false
	}
	return c.toRender.Submit(task.Task{Target: h, Fn: detachRender})
}

func attachRender(target any, args task.Args) {
	m, ok := target.(Member)
	if !ok {
		return
	}
	r, ok := target.(Renderer)
	if !ok {
		return
	}
	input, _ := args.Value.(InputSource)
	s := m.sibling()
	s.ctx.attach(terminal{handle: s.self, node: r, input: input})
}

func detachRender(target any, _ task.Args) {
	if m, ok := target.(Member); ok {
		s := m.sibling()
		s.ctx.detach(s.self)
	}
}

func (c *Context) attach(t terminal) {
	for i := range c.terminals {
		if c.terminals[i].handle == t.handle {
			c.terminals[i] = t
			return
		}
	}
	c.terminals = append(c.terminals, t)
}

func (c *Context) detach(h task.Handle) {
	for i := range c.terminals {
		if c.terminals[i].handle == h {
			c.terminals = append(c.terminals[:i], c.terminals[i+1:]...)
			return
		}
	}
}

// RenderTick runs one render period: it drains the control→render queue,
// renders every attached node into a scratch buffer and sums the results
// into out. It reports whether any node produced valid output. Call it from
// the render goroutine only.
func (c *Context) RenderTick(out []float64) bool {
	c.toRender.Drain()

	buffer.Zero(out)
	c.scratch = buffer.Fit(c.scratch, len(out))

	valid := false
	for _, t := range c.terminals {
		if t.node.RenderSamples(c.scratch, c.options.Channels, t.input, true) {
			buffer.Mix(out, c.scratch)
			valid = true
		}
	}

	c.renderTicks.Add(1)
	return valid
}

// ControlTick drains the render→control queue and returns the number of
// tasks that ran. Call it regularly from the control side.
func (c *Context) ControlTick() int {
	n := c.toControl.Drain()
	c.controlTicks.Add(1)
	return n
}

// Start runs RenderTick on a dedicated goroutine once per buffer period
// until ctx is cancelled or Stop is called. Each tick is handed to sink
// when sink is non-nil.
func (c *Context) Start(ctx context.Context, sink OutputSink) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return ErrAlreadyRunning
	}

	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})
	c.running = true

	period := c.options.BufferPeriod()
	logrus.WithFields(logrus.Fields{
		"function": "Context.Start",
		"period":   period.String(),
	}).Info("Starting render loop")

	go c.renderLoop(runCtx, period, sink, c.done)
	return nil
}

func (c *Context) renderLoop(ctx context.Context, period time.Duration, sink OutputSink, done chan struct{}) {
	defer close(done)

	out := make([]float64, c.options.BufferSamples())
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			valid := c.RenderTick(out)
			if sink != nil {
				sink(out, valid)
			}
		}
	}
}

// Stop halts the render loop started by Start and waits for it to exit.
// It is safe to call Stop when the loop is not running.
func (c *Context) Stop() error {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return nil
	}
	cancel, done := c.cancel, c.done
	c.running = false
	c.mu.Unlock()

	cancel()
	<-done

	logrus.WithFields(logrus.Fields{
		"function":     "Context.Stop",
		"render_ticks": c.renderTicks.Load(),
	}).Info("Render loop stopped")
	return nil
}

// IsRunning reports whether the render loop is active.
func (c *Context) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}
