package main

import (
	"math"
	"testing"

	"github.com/twhiteaker/arc-panimate/internal/config"
)

func keep() overrides {
	return overrides{AccelerateSteps: -1, CruiseSteps: -1}
}

func TestValidateOverrides_Defaults(t *testing.T) {
	if err := validateOverrides(keep()); err != nil {
		t.Errorf("flag defaults should be valid, got: %v", err)
	}
}

func TestValidateOverrides_Invalid(t *testing.T) {
	cases := []struct {
		name string
		edit func(*overrides)
	}{
		{"accelerate_negative", func(o *overrides) { o.AccelerateSteps = -2 }},
		{"cruise_negative", func(o *overrides) { o.CruiseSteps = -5 }},
		{"max_scale_negative", func(o *overrides) { o.MaxScale = -1 }},
		{"target_scale_nan", func(o *overrides) { o.TargetScale = math.NaN() }},
		{"max_scale_inf", func(o *overrides) { o.MaxScale = math.Inf(1) }},
		{"workers_negative", func(o *overrides) { o.Workers = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ov := keep()
			tc.edit(&ov)
			if err := validateOverrides(ov); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestApplyOverrides_KeepsConfig(t *testing.T) {
	maxScale := 5000.0
	cfg := &config.Config{}
	cfg.Motion = config.MotionConfig{AccelerateSteps: 3, CruiseSteps: 4, MaxScale: &maxScale}
	cfg.Output.Video = "pan.mp4"
	cfg.Output.Stats = true

	applyOverrides(cfg, keep())

	if cfg.Motion.AccelerateSteps != 3 || cfg.Motion.CruiseSteps != 4 {
		t.Errorf("steps changed: %+v", cfg.Motion)
	}
	if *cfg.Motion.MaxScale != 5000 || cfg.Motion.TargetScale != nil {
		t.Errorf("scales changed: %v %v", cfg.Motion.MaxScale, cfg.Motion.TargetScale)
	}
	if cfg.Output.Video != "pan.mp4" || !cfg.Output.Stats {
		t.Errorf("output changed: %+v", cfg.Output)
	}
}

func TestApplyOverrides_Replaces(t *testing.T) {
	cfg := &config.Config{}
	cfg.Motion = config.MotionConfig{AccelerateSteps: 3, CruiseSteps: 4}

	applyOverrides(cfg, overrides{
		AccelerateSteps: 0,
		CruiseSteps:     10,
		MaxScale:        2e6,
		TargetScale:     1e6,
		Video:           "out.mp4",
		Workers:         2,
		Debug:           true,
	})

	if cfg.Motion.AccelerateSteps != 0 || cfg.Motion.CruiseSteps != 10 {
		t.Errorf("steps = %+v", cfg.Motion)
	}
	if *cfg.Motion.MaxScale != 2e6 || *cfg.Motion.TargetScale != 1e6 {
		t.Errorf("scales = %v %v", *cfg.Motion.MaxScale, *cfg.Motion.TargetScale)
	}
	if cfg.Output.Video != "out.mp4" || cfg.Output.Workers != 2 || !cfg.Output.Debug {
		t.Errorf("output = %+v", cfg.Output)
	}
}
