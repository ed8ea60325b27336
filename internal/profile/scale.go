package profile

// Scales returns the map scale at each frame, aligned with Positions.
//
// Scale rises from start to peak while the motion accelerates, holds peak
// while cruising and falls to target while decelerating. Without
// acceleration the cruise is split in a linear rise and a linear fall,
// the odd step going to the fall.
func Scales(accelerateSteps, cruiseSteps int, start, peak, target float64) ([]float64, error) {
	if err := checkSteps(accelerateSteps, cruiseSteps); err != nil {
		return nil, err
	}

	a, c := accelerateSteps, cruiseSteps
	if a == 0 && c == 0 {
		return []float64{target}, nil
	}

	scales := make([]float64, 0, FrameCount(a, c))
	if a == 0 {
		risingSteps := c / 2
		fallingSteps := risingSteps + c%2

		scales = append(scales, start)
		if risingSteps > 0 {
			step := (peak - start) / float64(risingSteps)
			for i := 0; i < risingSteps; i++ {
				scales = append(scales, start+step*float64(i+1))
			}
		}

		step := (peak - target) / float64(fallingSteps)
		for i := fallingSteps - 1; i >= 0; i-- {
			scales = append(scales, target+step*float64(i))
		}
		return scales, nil
	}

	if a >= quadraticMinSteps {
		scales = appendEasedRise(scales, a, start, peak)
	} else {
		step := (peak - start) / float64(a)
		for i := 0; i <= a; i++ {
			scales = append(scales, start+step*float64(i))
		}
	}

	for i := 0; i < c; i++ {
		scales = append(scales, peak)
	}

	if a >= quadraticMinSteps {
		scales = appendEasedFall(scales, a, peak, target)
	} else {
		step := (target - peak) / float64(a)
		for i := 0; i < a; i++ {
			scales = append(scales, peak+step*float64(i+1))
		}
	}
	return scales, nil
}

// easeSplit divides steps into an ease-in and an ease-out half, the odd
// step going to the ease-out, and returns the rate that makes the two
// quadratic pieces span delta.
func easeSplit(steps int, delta float64) (in, out int, rate float64) {
	in = steps / 2
	out = in + steps%2
	denom := 0.5*float64(in*in-out*out) + float64(in*out)
	return in, out, delta / denom
}

// appendEasedRise appends steps+1 values going from start to peak.
func appendEasedRise(dst []float64, steps int, start, peak float64) []float64 {
	in, out, rate := easeSplit(steps, peak-start)
	for i := 0; i <= in; i++ {
		dst = append(dst, start+0.5*rate*float64(i*i))
	}
	for i := out - 1; i >= 0; i-- {
		dst = append(dst, peak-0.5*rate*float64(i*i))
	}
	return dst
}

// appendEasedFall appends steps values leaving peak and ending on target.
func appendEasedFall(dst []float64, steps int, peak, target float64) []float64 {
	in, out, rate := easeSplit(steps, peak-target)
	for i := 0; i < in; i++ {
		dst = append(dst, peak-0.5*rate*float64((i+1)*(i+1)))
	}
	for i := out - 1; i >= 0; i-- {
		dst = append(dst, target+0.5*rate*float64(i*i))
	}
	return dst
}
