package busflow

import (
	"github.com/katalvlaran/fluxcast/core"
	"github.com/katalvlaran/fluxcast/diag"
	"github.com/katalvlaran/fluxcast/trans"
)

// Component mappers: each takes one canonical component plus the diagnostics
// collector and produces the backend-native records. Mappers are pure —
// identical inputs yield identical records and diagnostics.

// flowFromEdge normalizes an edge into a native Flow, recording the
// infinite-capacity approximation when it applies.
func flowFromEdge(u core.Uid, e core.Edge, d *diag.Collector) (Flow, error) {
	spec, approx, err := trans.NormalizeCapacity(u, e)
	if err != nil {
		return Flow{}, err
	}
	if approx {
		d.Warnf(u.String(), "infinite capacity represented as expandable from zero")
	}

	f := Flow{
		Capacity:         spec.Existing,
		Expandable:       spec.Expandable,
		ExpansionMin:     spec.ExpansionMin,
		ExpansionMax:     spec.ExpansionMax,
		ExpansionBounded: spec.ExpansionBounded,
		ExpansionCost:    spec.ExpansionCost,
		Cost:             e.Cost,
		Emission:         e.Emission,
		PositiveGradient: e.PositiveGradient,
		NegativeGradient: e.NegativeGradient,
	}
	if e.NonConvex != nil {
		f.Commitment = &Commitment{
			StartupCost:   e.NonConvex.StartupCost,
			ShutdownCost:  e.NonConvex.ShutdownCost,
			MinUptime:     e.NonConvex.MinUptime,
			MinDowntime:   e.NonConvex.MinDowntime,
			InitialStatus: e.NonConvex.InitialStatus,
		}
	}

	return f, nil
}

// mapBus maps a canonical bus to a native bus record.
func mapBus(b core.Bus) Bus {
	return Bus{Name: b.U.String()}
}

// mapSource maps a canonical source to a native source record.
func mapSource(s core.Source, d *diag.Collector) (SourceNode, error) {
	f, err := flowFromEdge(s.U, s.Outflow, d)
	if err != nil {
		return SourceNode{}, err
	}

	return SourceNode{Name: s.U.String(), Target: s.Bus.String(), Flow: f}, nil
}

// mapSink maps a canonical sink to a native sink record, pinning the flow to
// the demand series when one is fixed.
func mapSink(s core.Sink, d *diag.Collector) (SinkNode, error) {
	f, err := flowFromEdge(s.U, s.Inflow, d)
	if err != nil {
		return SinkNode{}, err
	}
	f.Fixed = s.Demand.Clone()

	return SinkNode{Name: s.U.String(), Origin: s.Bus.String(), Flow: f}, nil
}

// mapConnector maps a canonical connector to two directional link records
// sharing the connector's name. Efficiencies apply only to the directional
// record carrying them.
func mapConnector(c core.Connector, d *diag.Collector) ([]LinkNode, error) {
	fAB, err := flowFromEdge(c.U, c.FlowAB, d)
	if err != nil {
		return nil, err
	}
	fBA, err := flowFromEdge(c.U, c.FlowBA, d)
	if err != nil {
		return nil, err
	}

	name := c.U.String()

	return []LinkNode{
		{Name: name, From: c.BusA.String(), To: c.BusB.String(), Efficiency: c.EfficiencyAB, Flow: fAB},
		{Name: name, From: c.BusB.String(), To: c.BusA.String(), Efficiency: c.EfficiencyBA, Flow: fBA},
	}, nil
}

// mapTransformer maps a canonical transformer to a native converter.
// Multi-output conversion is native here, including chp-tagged components;
// only the shared arity rules can fail.
func mapTransformer(t core.Transformer, d *diag.Collector) (ConverterNode, error) {
	if err := trans.ValidateTransformer(t); err != nil {
		return ConverterNode{}, err
	}

	inFlow, err := flowFromEdge(t.U, t.InFlow, d)
	if err != nil {
		return ConverterNode{}, err
	}

	conv := ConverterNode{
		Name:   t.U.String(),
		Input:  t.Inputs[0].String(),
		InFlow: inFlow,
	}

	// Native per-carrier outputs; deterministic order via PrimaryCarrier.
	primary, secondaries, err := trans.PrimaryCarrier(t)
	if err != nil {
		return ConverterNode{}, err
	}
	for _, out := range append([]core.Output{primary}, secondaries...) {
		f, ferr := flowFromEdge(t.U, out.Flow, d)
		if ferr != nil {
			return ConverterNode{}, ferr
		}
		conv.Outputs = append(conv.Outputs, ConverterOutput{
			Bus:     out.Bus.String(),
			Carrier: out.Carrier,
			Factor:  out.Efficiency,
			Flow:    f,
		})
	}

	return conv, nil
}

// mapStorage maps a canonical storage to a native storage record.
// Asymmetric efficiencies and the cyclic flag carry over unchanged.
func mapStorage(s core.Storage, d *diag.Collector) (StorageNode, error) {
	f, err := flowFromEdge(s.U, s.Flow, d)
	if err != nil {
		return StorageNode{}, err
	}

	return StorageNode{
		Name:              s.U.String(),
		Bus:               s.Bus.String(),
		Capacity:          s.Capacity,
		InitialSoc:        s.InitialSoc,
		FinalSoc:          s.FinalSoc,
		IdleChangeRate:    s.IdleChangeRate,
		InflowEfficiency:  s.InflowEfficiency,
		OutflowEfficiency: s.OutflowEfficiency,
		Cyclic:            s.Cyclic,
		Flow:              f,
	}, nil
}
