package trajectory

// Optional is a scale that may or may not have been provided by the caller.
type Optional struct {
	value float64
	set   bool
}

// Some returns a provided value.
func Some(v float64) Optional {
	return Optional{value: v, set: true}
}

// None is the absent value.
var None = Optional{}

// FromPtr converts a nil-able value from config or flags.
func FromPtr(v *float64) Optional {
	if v == nil {
		return None
	}
	return Some(*v)
}

// Get returns the value and whether it was provided.
func (o Optional) Get() (float64, bool) {
	return o.value, o.set
}

// Or returns the value if provided, def otherwise.
func (o Optional) Or(def float64) float64 {
	if o.set {
		return o.value
	}
	return def
}

// Options configures a trajectory. The zero value produces a single frame
// at the start of the path.
type Options struct {
	AccelerateSteps int
	CruiseSteps     int
	MaxScale        Optional // peak scale; midpoint of start and target if absent
	TargetScale     Optional // final scale; the viewport scale if absent
}

// Scales holds the resolved scale parameters of a trajectory.
type Scales struct {
	Start, Max, Target float64
}

// ResolveScales applies the defaults for absent scales.
func (o Options) ResolveScales(start float64) Scales {
	target := o.TargetScale.Or(start)
	return Scales{
		Start:  start,
		Target: target,
		Max:    o.MaxScale.Or((start + target) / 2),
	}
}
