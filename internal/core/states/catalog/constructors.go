package catalog

import (
	"github.com/zeusync/statesched/internal/core/states"
)

func flag(name string) states.Constructor {
	return func(_ *states.Entity, p states.Params) (states.Instance, error) {
		return &boolState{kind: name, value: p.Bool(ParamValue, false)}, nil
	}
}

func vector(name string) states.Constructor {
	return func(_ *states.Entity, p states.Params) (states.Instance, error) {
		s := &vectorState{kind: name}
		if v, ok := p[ParamValue]; ok {
			if err := s.SetValue(v); err != nil {
				return nil, err
			}
		}
		return s, nil
	}
}

func set(name string) states.Constructor {
	return func(_ *states.Entity, p states.Params) (states.Instance, error) {
		members, err := stringsParam(name, p[ParamValue])
		if err != nil {
			return nil, err
		}
		return &setState{kind: name, members: normalize(members)}, nil
	}
}

func mirror(name, source string) states.Constructor {
	return func(e *states.Entity, _ states.Params) (states.Instance, error) {
		return &mirrorState{setState: setState{kind: name}, e: e, source: source}, nil
	}
}

func temperature(e *states.Entity, p states.Params) (states.Instance, error) {
	ambient := p.Float(ParamAmbient, DefaultAmbientTemperature)
	return &temperatureState{
		scalarState: scalarState{kind: Temperature, value: p.Float(ParamValue, ambient)},
		e:           e,
		ambient:     ambient,
		rate:        p.Float(ParamRate, DefaultRate),
	}, nil
}

// maxTemperature starts from the entity's current temperature; Temperature is
// always instantiated first.
func maxTemperature(e *states.Entity, p states.Params) (states.Instance, error) {
	start, ok := scalarOf(e, Temperature)
	if !ok {
		start = DefaultAmbientTemperature
	}
	return &maxTemperatureState{
		scalarState: scalarState{kind: MaxTemperature, value: p.Float(ParamValue, start)},
		e:           e,
	}, nil
}

func threshold(name, source, param string, def float64, above bool) states.Constructor {
	return func(e *states.Entity, p states.Params) (states.Instance, error) {
		return &thresholdState{
			boolState: boolState{kind: name, value: p.Bool(ParamValue, false)},
			e:         e,
			source:    source,
			threshold: p.Float(param, def),
			above:     above,
		}, nil
	}
}

func heatSource(e *states.Entity, p states.Params) (states.Instance, error) {
	var gates []gate
	if p.Bool(ParamRequiresToggledOn, false) {
		gates = append(gates, gate{kind: ToggledOn, want: true})
	}
	if p.Bool(ParamRequiresClosed, false) {
		gates = append(gates, gate{kind: Open, want: false})
	}
	return &heatSourceState{
		gatedState: gatedState{
			boolState: boolState{kind: HeatSourceOrSink, value: p.Bool(ParamValue, len(gates) == 0)},
			e:         e,
			gates:     gates,
		},
		temperature: p.Float(ParamSourceTemperature, DefaultSourceTemperature),
	}, nil
}

func waterSource(e *states.Entity, p states.Params) (states.Instance, error) {
	return &gatedState{
		boolState: boolState{kind: WaterSource, value: p.Bool(ParamValue, false)},
		e:         e,
		gates:     []gate{{kind: ToggledOn, want: true}},
	}, nil
}

func room(name string) states.Constructor {
	return func(e *states.Entity, _ states.Params) (states.Instance, error) {
		return &roomState{boolState: boolState{kind: name}, e: e, room: roomTypes[name]}, nil
	}
}

// stringsParam accepts []string as well as the []any YAML and JSON decode into.
func stringsParam(kind string, v any) ([]string, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return val, nil
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, valueTypeError(kind, "list of strings", v)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, valueTypeError(kind, "list of strings", v)
	}
}
