// Package engine runs the monthly simulation: the Simulation state with its
// eight-phase tick, the player intent queue, win/loss evaluation and a
// real-time clock that advances months on its own goroutine.
package engine

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// Calendar layers, counted in ticks. One tick is one month.
const (
	TicksPerQuarter = 3
	TicksPerYear    = 12
)

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Engine drives a simulation forward in real time.
type Engine struct {
	Tick     uint64        // Last tick handed to the callbacks
	Speed    float64       // Multiplier: 1.0 = one month per Interval, 0 = paused
	Interval time.Duration // Wall time of one month at speed 1

	running atomic.Bool

	OnMonth   func(tick uint64) // Every tick
	OnQuarter func(tick uint64) // Every 3 ticks
	OnYear    func(tick uint64) // Every 12 ticks
}

// NewEngine creates an engine with default pacing starting after tick.
func NewEngine(tick uint64) *Engine {
	return &Engine{
		Tick:     tick,
		Speed:    1.0,
		Interval: time.Second,
	}
}

// Run starts the loop. Blocks until Stop is called.
func (e *Engine) Run() {
	e.running.Store(true)
	slog.Info("simulation engine started", "tick", e.Tick, "speed", e.Speed, "interval", e.Interval)

	for e.running.Load() {
		if e.Speed <= 0 {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()
		e.step()

		elapsed := time.Since(start)
		target := time.Duration(float64(e.Interval) / e.Speed)
		if elapsed < target && e.running.Load() {
			time.Sleep(target - elapsed)
		}
	}

	slog.Info("simulation engine stopped", "tick", e.Tick)
}

// Stop halts the loop after the current month. Safe from any goroutine,
// including the callbacks.
func (e *Engine) Stop() {
	e.running.Store(false)
}

func (e *Engine) Running() bool {
	return e.running.Load()
}

// step advances one month and fires the layers that fall on it.
func (e *Engine) step() {
	e.Tick++

	if e.OnMonth != nil {
		e.OnMonth(e.Tick)
	}
	if e.Tick%TicksPerQuarter == 0 && e.OnQuarter != nil {
		e.OnQuarter(e.Tick)
	}
	if e.Tick%TicksPerYear == 0 && e.OnYear != nil {
		e.OnYear(e.Tick)
	}
}

// SimTime renders a tick as a calendar month. Tick 1 is January of year 1;
// tick 0 is the day the keys were handed over.
func SimTime(tick uint64) string {
	if tick == 0 {
		return "Move-in day, Year 1"
	}
	month := (tick - 1) % TicksPerYear
	year := (tick-1)/TicksPerYear + 1
	return fmt.Sprintf("%s, Year %d", monthNames[month], year)
}
