package graph

import "github.com/opd-ai/audionode/task"

// Stats is a point-in-time snapshot of engine counters.
type Stats struct {
	RenderTicks   uint64          `json:"render_ticks"`
	ControlTicks  uint64          `json:"control_ticks"`
	ToRender      task.QueueStats `json:"to_render"`
	ToControl     task.QueueStats `json:"to_control"`
	PoolExhausted uint64          `json:"pool_exhausted"`
	PoolAvailable int             `json:"pool_available"`
	LiveNodes     int             `json:"live_nodes"`
}

// Stats returns current engine counters. Safe from any goroutine.
func (c *Context) Stats() Stats {
	return Stats{
		RenderTicks:   c.renderTicks.Load(),
		ControlTicks:  c.controlTicks.Load(),
		ToRender:      c.toRender.Stats(),
		ToControl:     c.toControl.Stats(),
		PoolExhausted: c.poolExhausted.Load(),
		PoolAvailable: c.pool.Available(),
		LiveNodes:     c.registry.Live(),
	}
}
