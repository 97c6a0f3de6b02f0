package briansbrain

import (
	"strconv"

	"brains3d/internal/core"
)

// Parameters reports the engine's configuration and live counters.
func (e *Engine) Parameters() core.ParameterSnapshot {
	size := e.grid.Size()
	census := e.grid.Census()
	return core.ParameterSnapshot{
		Groups: []core.ParameterGroup{
			{
				Name: "Grid",
				Params: []core.Parameter{
					intParam("w", "Width", size.W),
					intParam("h", "Height", size.H),
					intParam("d", "Depth", size.D),
					floatParam("p", "Seed probability", e.grid.Probability()),
				},
			},
			{
				Name: "Run",
				Params: []core.Parameter{
					boolParam("running", "Running", e.running),
					floatParam("interval", "Interval (s)", e.Interval()),
					{Key: "generation", Label: "Generation", Type: core.ParamTypeInt, Value: strconv.FormatUint(e.generation, 10)},
				},
			},
			{
				Name: "Census",
				Params: []core.Parameter{
					intParam("firing", "Firing", census.Firing),
					intParam("refractory", "Refractory", census.Refractory),
					intParam("ready", "Ready", census.Ready),
				},
			},
		},
	}
}

func intParam(key, label string, v int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(v)}
}

func floatParam(key, label string, v float64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeFloat, Value: strconv.FormatFloat(v, 'f', 3, 64)}
}

func boolParam(key, label string, v bool) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeBool, Value: strconv.FormatBool(v)}
}
