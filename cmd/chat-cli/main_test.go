package main

import (
	"strings"
	"testing"

	"github.com/sortwise/sortwise/pkg/sortwise"
	"github.com/sortwise/sortwise/pkg/sortwise/config"
	"github.com/sortwise/sortwise/pkg/sortwise/spell"
)

func newTestApp(t *testing.T) *app {
	t.Helper()
	engine := sortwise.New(sortwise.Options{})
	if err := engine.KB().Seed([]string{"Plastic(Bottle)"}); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	return &app{
		engine: engine,
		fixer:  spell.New([]string{"recyclable"}, 0),
		cfg:    &config.Config{},
	}
}

func TestHandleCommandHelp(t *testing.T) {
	a := newTestApp(t)

	reply, quit := a.handleCommand(":help")
	if quit {
		t.Error(":help should not quit")
	}
	for _, cmd := range []string{":kb", ":stats", ":debug", ":spell", ":reload", ":quit"} {
		if !strings.Contains(reply, cmd) {
			t.Errorf("help missing %s", cmd)
		}
	}
}

func TestHandleCommandKB(t *testing.T) {
	a := newTestApp(t)

	reply, _ := a.handleCommand(":kb")
	if !strings.Contains(reply, "Plastic(Bottle)") {
		t.Errorf(":kb = %q", reply)
	}
}

func TestHandleCommandStats(t *testing.T) {
	a := newTestApp(t)

	reply, _ := a.handleCommand(":stats")
	if !strings.Contains(reply, "KB statements: 1") {
		t.Errorf(":stats = %q", reply)
	}
}

func TestHandleCommandDict(t *testing.T) {
	a := newTestApp(t)

	reply, _ := a.handleCommand(":dict")
	if !strings.Contains(reply, "1 words") {
		t.Errorf(":dict = %q", reply)
	}
}

func TestHandleCommandToggles(t *testing.T) {
	a := newTestApp(t)

	if reply, _ := a.handleCommand(":debug on"); !strings.Contains(reply, "on") {
		t.Errorf(":debug on = %q", reply)
	}
	if !a.engine.DebugEnabled() {
		t.Error("debug should be on")
	}

	if reply, _ := a.handleCommand(":spell off"); !strings.Contains(reply, "off") {
		t.Errorf(":spell off = %q", reply)
	}
	if a.engine.SpellEnabled() {
		t.Error("spell should be off")
	}

	if reply, _ := a.handleCommand(":debug maybe"); !strings.Contains(reply, "usage") {
		t.Errorf("bad toggle = %q", reply)
	}
}

func TestHandleCommandQuit(t *testing.T) {
	a := newTestApp(t)

	if _, quit := a.handleCommand(":quit"); !quit {
		t.Error(":quit should quit")
	}
	if _, quit := a.handleCommand(":exit"); !quit {
		t.Error(":exit should quit")
	}
}

func TestHandleCommandUnknown(t *testing.T) {
	a := newTestApp(t)

	reply, quit := a.handleCommand(":frobnicate")
	if quit {
		t.Error("unknown command should not quit")
	}
	if !strings.Contains(reply, "Unknown command") {
		t.Errorf("reply = %q", reply)
	}
}
