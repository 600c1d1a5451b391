package stream

import (
	"context"
	"log"
	"time"
)

// CommandType names a request handled by the Controller loop.
type CommandType string

const (
	CommandReset  CommandType = "reset"
	CommandPause  CommandType = "pause"
	CommandResume CommandType = "resume"
	CommandSwap   CommandType = "swap"
)

// Command is sent to a running Controller. Animation is only used by swap.
type Command struct {
	Type      CommandType
	Animation Animation
}

// FrameSink receives every frame the Controller produces.
type FrameSink interface {
	SendFrame(f *Frame) error
}

// Controller that manages animations.
type Controller struct {
	animation           Animation
	nextAnimation       Animation
	commands            chan Command
	paused              bool
	started             bool
	runtimeMs           int64
	frameRate           float64
	transition          float64
	transitionIncrement float64
}

// NewController creates an instance of a Controller.
func NewController(animation Animation, frameRate float64, transitionSecs float64) *Controller {
	c := new(Controller)
	c.animation = animation
	c.nextAnimation = nil
	c.commands = make(chan Command, 8)
	c.frameRate = frameRate
	c.transition = 0.0
	if transitionSecs > 0 {
		c.transitionIncrement = 1.0 / (c.frameRate * transitionSecs)
	} else {
		c.transitionIncrement = 1.0
	}

	return c
}

// Commands is the channel used to send commands to a running Controller.
func (c *Controller) Commands() chan<- Command {
	return c.commands
}

// CalculateFrame produces the frame for the given runtime. The delta from the
// previous call is fed to the active animations; the first call and paused
// calls feed zero.
func (c *Controller) CalculateFrame(runtimeMs int64) *Frame {
	deltaMs := 0.0
	if c.started && !c.paused {
		deltaMs = float64(runtimeMs - c.runtimeMs)
	}
	c.runtimeMs = runtimeMs
	c.started = true

	if c.nextAnimation == nil {
		return c.animation.AdvanceFrame(deltaMs)
	}

	f1 := c.animation.AdvanceFrame(deltaMs)
	f2 := c.nextAnimation.AdvanceFrame(deltaMs)
	f := f1.InterpolateFrame(f2, c.transition)
	c.transition += c.transitionIncrement

	if c.transition >= 1.0 {
		c.animation = c.nextAnimation
		c.nextAnimation = nil
		c.transition = 0.0
	}

	return f
}

func (c *Controller) handleCommand(cmd Command) {
	switch cmd.Type {
	case CommandReset:
		c.animation.Reset()
		if c.nextAnimation != nil {
			c.nextAnimation.Reset()
		}
	case CommandPause:
		c.paused = true
	case CommandResume:
		c.paused = false
	case CommandSwap:
		if cmd.Animation == nil {
			log.Println("Ignoring swap without animation")
			return
		}
		if c.nextAnimation != nil {
			// Finish the transition in progress before starting the next.
			c.animation = c.nextAnimation
		}
		c.nextAnimation = cmd.Animation
		c.transition = 0.0
	default:
		log.Printf("Unknown command %q", cmd.Type)
	}
}

// Run produces frames at the configured frame rate and sends them to sink
// until ctx is done. Commands are applied between frames.
func (c *Controller) Run(ctx context.Context, sink FrameSink) error {
	interval := time.Duration(float64(time.Second) / c.frameRate)
	publishTimer := time.NewTicker(interval)
	defer publishTimer.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-c.commands:
			c.handleCommand(cmd)
		case <-publishTimer.C:
			f := c.CalculateFrame(time.Since(start).Milliseconds())
			if err := sink.SendFrame(f); err != nil {
				log.Printf("Failed to send frame: %v", err)
			}
		}
	}
}
