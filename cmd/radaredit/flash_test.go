package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

// TestFlashPhaseCalculation verifies the phase logic for message flashing
func TestFlashPhaseCalculation(t *testing.T) {
	tests := []struct {
		elapsed      int64
		wantInverted bool
		description  string
	}{
		{-1, false, "clock went backwards"},
		{0, false, "start of flash - normal"},
		{124, false, "end of phase 0 - normal"},
		{125, true, "start of phase 1 - inverted"},
		{249, true, "end of phase 1 - inverted"},
		{250, false, "start of phase 2 - normal"},
		{375, true, "start of phase 3 - inverted"},
		{499, true, "end of phase 3 - inverted"},
		{500, false, "after flash period - normal"},
		{1000, false, "long after flash - normal"},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			if got := flashInverted(tt.elapsed); got != tt.wantInverted {
				t.Errorf("elapsed=%d: got inverted=%v, want %v", tt.elapsed, got, tt.wantInverted)
			}
		})
	}
}

// TestFlashMessageTypes verifies which message types flash
func TestFlashMessageTypes(t *testing.T) {
	tests := []struct {
		msgType     MessageType
		shouldFlash bool
	}{
		{MsgInfo, false},
		{MsgError, true},
		{MsgSuccess, true},
		{MsgWarning, true},
	}

	for _, tt := range tests {
		if got := flashes(tt.msgType); got != tt.shouldFlash {
			t.Errorf("msgType=%v: got %v, want %v", tt.msgType, got, tt.shouldFlash)
		}
	}
}

// TestPulseRedrawsAndStops verifies the redraw ticker posts interrupts while
// a message flashes and exits once the session ends
func TestPulseRedrawsAndStops(t *testing.T) {
	ed := newTestEditor(t)
	ed.flashUntil.Store(time.Now().Add(time.Minute).UnixMilli())

	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		ed.pulse(done, time.Millisecond)
		close(exited)
	}()

	interrupted := make(chan struct{})
	go func() {
		for {
			switch ed.screen.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventInterrupt:
				close(interrupted)
				return
			}
		}
	}()
	select {
	case <-interrupted:
	case <-time.After(time.Second):
		t.Fatal("no redraw while flashing")
	}

	close(done)
	select {
	case <-exited:
	case <-time.After(time.Second):
		t.Fatal("pulse still running after done closed")
	}
}

// TestInfoMessageDoesNotFlash verifies info messages leave the ticker idle
func TestInfoMessageDoesNotFlash(t *testing.T) {
	ed := newTestEditor(t)
	ed.showMessage("Save failed", MsgError)
	if ed.flashUntil.Load() == 0 {
		t.Fatal("error message should flash")
	}
	ed.showMessage("Ready", MsgInfo)
	if got := ed.flashUntil.Load(); got != 0 {
		t.Errorf("flashUntil = %d, want 0", got)
	}
}
