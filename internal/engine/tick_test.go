package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSimTime(t *testing.T) {
	tests := []struct {
		tick uint64
		want string
	}{
		{0, "Move-in day, Year 1"},
		{1, "January, Year 1"},
		{12, "December, Year 1"},
		{13, "January, Year 2"},
		{36, "December, Year 3"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SimTime(tt.tick), "tick %d", tt.tick)
	}
}

func TestEngineLayers(t *testing.T) {
	e := NewEngine(0)
	var months, quarters, years []uint64
	e.OnMonth = func(tick uint64) { months = append(months, tick) }
	e.OnQuarter = func(tick uint64) { quarters = append(quarters, tick) }
	e.OnYear = func(tick uint64) { years = append(years, tick) }

	for i := 0; i < 24; i++ {
		e.step()
	}
	assert.Len(t, months, 24)
	assert.Equal(t, []uint64{3, 6, 9, 12, 15, 18, 21, 24}, quarters)
	assert.Equal(t, []uint64{12, 24}, years)
}

func TestEngineResumesFromTick(t *testing.T) {
	e := NewEngine(11)
	var year uint64
	e.OnYear = func(tick uint64) { year = tick }
	e.step()
	assert.Equal(t, uint64(12), e.Tick)
	assert.Equal(t, uint64(12), year)
}

func TestEngineRunStopsFromCallback(t *testing.T) {
	e := NewEngine(0)
	e.Interval = time.Millisecond
	e.Speed = 10
	e.OnMonth = func(tick uint64) {
		if tick == 3 {
			e.Stop()
		}
	}

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		e.Stop()
		t.Fatal("engine did not stop")
	}
	assert.Equal(t, uint64(3), e.Tick)
	assert.False(t, e.Running())
}
