// Package testsupport provides scripted prompt drivers and fixture helpers
// shared across controller and session tests.
package testsupport

import (
	"context"
	"fmt"

	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/prompt"
)

// Step is a single scripted answer. Exactly one of the value fields is
// consulted, matching the driver method the controller is expected to call.
type Step struct {
	// Kind names the expected driver call: "input", "confirm", "select",
	// "multiselect".
	Kind string

	Input   string
	Confirm bool
	Index   int
	Indices []int
	Err     error
}

// ScriptDriver replays a fixed script of answers and records every prompt it
// was shown. A call that does not match the next step's Kind fails the run.
type ScriptDriver struct {
	Steps []Step

	// Messages records the Message of each prompt in call order.
	Messages []string
	// InfoLines records Info output.
	InfoLines []string

	cursor int
}

func (d *ScriptDriver) next(kind, message string) (Step, error) {
	d.Messages = append(d.Messages, message)
	if d.cursor >= len(d.Steps) {
		return Step{}, fmt.Errorf("testsupport: unexpected %s prompt %q after script end", kind, message)
	}
	step := d.Steps[d.cursor]
	d.cursor++
	if step.Kind != kind {
		return Step{}, fmt.Errorf("testsupport: step %d expected %s call, got %s (%q)", d.cursor, step.Kind, kind, message)
	}
	return step, step.Err
}

func (d *ScriptDriver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	step, err := d.next("input", cfg.Message)
	if err != nil {
		return "", err
	}
	return step.Input, nil
}

func (d *ScriptDriver) Confirm(_ context.Context, cfg prompt.ConfirmConfig) (bool, error) {
	step, err := d.next("confirm", cfg.Message)
	if err != nil {
		return false, err
	}
	return step.Confirm, nil
}

func (d *ScriptDriver) Select(_ context.Context, cfg prompt.SelectConfig) (int, error) {
	step, err := d.next("select", cfg.Message)
	if err != nil {
		return 0, err
	}
	if step.Index < -1 || step.Index >= len(cfg.Options) {
		return 0, fmt.Errorf("testsupport: scripted index %d out of range for %d options", step.Index, len(cfg.Options))
	}
	return step.Index, nil
}

func (d *ScriptDriver) MultiSelect(_ context.Context, cfg prompt.SelectConfig) ([]int, error) {
	step, err := d.next("multiselect", cfg.Message)
	if err != nil {
		return nil, err
	}
	for _, idx := range step.Indices {
		if idx < 0 || idx >= len(cfg.Options) {
			return nil, fmt.Errorf("testsupport: scripted index %d out of range for %d options", idx, len(cfg.Options))
		}
	}
	return step.Indices, nil
}

func (d *ScriptDriver) Info(_ context.Context, msg string) error {
	d.InfoLines = append(d.InfoLines, msg)
	return nil
}

// Exhausted reports whether the whole script was consumed.
func (d *ScriptDriver) Exhausted() bool {
	return d.cursor == len(d.Steps)
}
