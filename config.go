package gesture

import (
	"encoding/json"
	"fmt"
	"time"
)

// Config holds the thresholds recognizers fall back to when a gesture
// declaration leaves a field at zero. Distances are in world pixels.
type Config struct {
	TapSlop         float64       // max finger travel within one tap
	MultiTapTimeout time.Duration // max gap between taps of a multi-tap

	LongPressDuration time.Duration
	LongPressSlop     float64
	LongPressRepeat   time.Duration // interval between repeat actions

	PanDistance      float64 // touch and pen
	MousePanDistance float64 // lower bound applied for mouse-driven pans

	PinchDistance   float64
	CtrlWheelFactor float64 // scale change per wheel unit when Ctrl is held

	RotationAngle float64 // degrees

	SwipeSpeed          float64 // pixels per second
	SwipeAngleTolerance float64 // degrees either side of the declared axis

	SequenceTimeout time.Duration // max gap between steps of a sequence group

	VelocityWindow   time.Duration
	MaxFlingVelocity float64
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		TapSlop:             20,
		MultiTapTimeout:     300 * time.Millisecond,
		LongPressDuration:   500 * time.Millisecond,
		LongPressSlop:       15,
		LongPressRepeat:     300 * time.Millisecond,
		PanDistance:         5,
		MousePanDistance:    15,
		PinchDistance:       5,
		CtrlWheelFactor:     0.005,
		RotationAngle:       1,
		SwipeSpeed:          100,
		SwipeAngleTolerance: 45,
		SequenceTimeout:     300 * time.Millisecond,
		VelocityWindow:      100 * time.Millisecond,
		MaxFlingVelocity:    8000,
	}
}

// configFile is the JSON shape of a Config. Durations are milliseconds.
type configFile struct {
	TapSlop             *float64 `json:"tapSlop,omitempty"`
	MultiTapTimeoutMs   *int64   `json:"multiTapTimeoutMs,omitempty"`
	LongPressMs         *int64   `json:"longPressMs,omitempty"`
	LongPressSlop       *float64 `json:"longPressSlop,omitempty"`
	LongPressRepeatMs   *int64   `json:"longPressRepeatMs,omitempty"`
	PanDistance         *float64 `json:"panDistance,omitempty"`
	MousePanDistance    *float64 `json:"mousePanDistance,omitempty"`
	PinchDistance       *float64 `json:"pinchDistance,omitempty"`
	CtrlWheelFactor     *float64 `json:"ctrlWheelFactor,omitempty"`
	RotationAngle       *float64 `json:"rotationAngle,omitempty"`
	SwipeSpeed          *float64 `json:"swipeSpeed,omitempty"`
	SwipeAngleTolerance *float64 `json:"swipeAngleTolerance,omitempty"`
	SequenceTimeoutMs   *int64   `json:"sequenceTimeoutMs,omitempty"`
	VelocityWindowMs    *int64   `json:"velocityWindowMs,omitempty"`
	MaxFlingVelocity    *float64 `json:"maxFlingVelocity,omitempty"`
}

// LoadConfig parses JSON over DefaultConfig. Absent fields keep their
// defaults; negative values are rejected.
func LoadConfig(jsonData []byte) (Config, error) {
	cfg := DefaultConfig()
	var f configFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return cfg, fmt.Errorf("parse gesture config: %w", err)
	}

	floats := []struct {
		name string
		src  *float64
		dst  *float64
	}{
		{"tapSlop", f.TapSlop, &cfg.TapSlop},
		{"longPressSlop", f.LongPressSlop, &cfg.LongPressSlop},
		{"panDistance", f.PanDistance, &cfg.PanDistance},
		{"mousePanDistance", f.MousePanDistance, &cfg.MousePanDistance},
		{"pinchDistance", f.PinchDistance, &cfg.PinchDistance},
		{"ctrlWheelFactor", f.CtrlWheelFactor, &cfg.CtrlWheelFactor},
		{"rotationAngle", f.RotationAngle, &cfg.RotationAngle},
		{"swipeSpeed", f.SwipeSpeed, &cfg.SwipeSpeed},
		{"swipeAngleTolerance", f.SwipeAngleTolerance, &cfg.SwipeAngleTolerance},
		{"maxFlingVelocity", f.MaxFlingVelocity, &cfg.MaxFlingVelocity},
	}
	for _, v := range floats {
		if v.src == nil {
			continue
		}
		if *v.src < 0 {
			return cfg, fmt.Errorf("parse gesture config: %s must not be negative", v.name)
		}
		*v.dst = *v.src
	}

	durations := []struct {
		name string
		src  *int64
		dst  *time.Duration
	}{
		{"multiTapTimeoutMs", f.MultiTapTimeoutMs, &cfg.MultiTapTimeout},
		{"longPressMs", f.LongPressMs, &cfg.LongPressDuration},
		{"longPressRepeatMs", f.LongPressRepeatMs, &cfg.LongPressRepeat},
		{"sequenceTimeoutMs", f.SequenceTimeoutMs, &cfg.SequenceTimeout},
		{"velocityWindowMs", f.VelocityWindowMs, &cfg.VelocityWindow},
	}
	for _, v := range durations {
		if v.src == nil {
			continue
		}
		if *v.src < 0 {
			return cfg, fmt.Errorf("parse gesture config: %s must not be negative", v.name)
		}
		*v.dst = time.Duration(*v.src) * time.Millisecond
	}
	return cfg, nil
}
