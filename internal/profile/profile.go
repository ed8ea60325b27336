// Package profile computes eased positions and scales for a pan animation.
//
// Motion is modeled as constant acceleration: a body starting at rest
// accelerates for A ticks, cruises for C ticks and decelerates for A ticks,
// covering a normalized distance of 1. Every function returns
// 1 + C + 2*A values, the first one being the starting frame.
package profile

import (
	"errors"
	"fmt"
)

var ErrInvalidInput = errors.New("invalid input")

// quadraticMinSteps is the smallest accelerate count eased quadratically in Scales.
// Shorter ramps are interpolated linearly.
const quadraticMinSteps = 4

// FrameCount returns the number of frames produced for the given step counts.
func FrameCount(accelerateSteps, cruiseSteps int) int {
	return 1 + cruiseSteps + 2*accelerateSteps
}

func checkSteps(accelerateSteps, cruiseSteps int) error {
	if accelerateSteps < 0 {
		return fmt.Errorf("%w: accelerate steps must be >= 0, got %d", ErrInvalidInput, accelerateSteps)
	}
	if cruiseSteps < 0 {
		return fmt.Errorf("%w: cruise steps must be >= 0, got %d", ErrInvalidInput, cruiseSteps)
	}
	return nil
}

// Positions returns the fraction of the path traveled at each frame.
func Positions(accelerateSteps, cruiseSteps int) ([]float64, error) {
	if err := checkSteps(accelerateSteps, cruiseSteps); err != nil {
		return nil, err
	}

	a, c := accelerateSteps, cruiseSteps
	switch {
	case a == 0 && c == 0:
		return []float64{0}, nil

	case a == 0:
		pcts := make([]float64, 0, c+1)
		for i := 0; i <= c; i++ {
			pcts = append(pcts, float64(i)/float64(c))
		}
		return pcts, nil

	case c > 0:
		// Accel and decel each cover 0.5*rate*a², the cruise rate*a*c.
		rate := 1.0 / float64(a*c+a*a)
		accel := accelerationCurve(rate, a)
		velocity := rate * float64(a)

		pcts := make([]float64, 0, FrameCount(a, c))
		pcts = append(pcts, accel...)
		cruiseStart := accel[a] + velocity
		for i := 0; i < c; i++ {
			pcts = append(pcts, cruiseStart+velocity*float64(i))
		}
		return appendMirrored(pcts, accel), nil

	default:
		// Acceleration alone covers half the distance.
		rate := 1.0 / float64(a*a)
		accel := accelerationCurve(rate, a)

		pcts := make([]float64, 0, FrameCount(a, c))
		pcts = append(pcts, accel...)
		return appendMirrored(pcts, accel), nil
	}
}

// accelerationCurve returns 0.5*rate*i² for i in [0, steps].
func accelerationCurve(rate float64, steps int) []float64 {
	out := make([]float64, steps+1)
	for i := range out {
		out[i] = 0.5 * rate * float64(i*i)
	}
	return out
}

// appendMirrored appends the deceleration phase: the acceleration curve
// reflected around 1 and reversed, without its peak which the cruise
// (or the acceleration) already reached.
func appendMirrored(dst, accel []float64) []float64 {
	for i := len(accel) - 2; i >= 0; i-- {
		dst = append(dst, 1.0-accel[i])
	}
	return dst
}
