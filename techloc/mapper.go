package techloc

import (
	"github.com/katalvlaran/fluxcast/core"
	"github.com/katalvlaran/fluxcast/diag"
	"github.com/katalvlaran/fluxcast/trans"
)

// capacityFields is the normalized capacity block shared by techs and links.
type capacityFields struct {
	Capacity         float64
	Expandable       bool
	ExpansionMin     float64
	ExpansionMax     float64
	ExpansionBounded bool
	ExpansionCost    float64
}

// normalizeEdge converts an edge's capacity, recording the infinite-capacity
// approximation when it applies. Existing capacity and expansion coexist
// natively here; no encoding trick is needed.
func normalizeEdge(u core.Uid, e core.Edge, d *diag.Collector) (capacityFields, error) {
	spec, approx, err := trans.NormalizeCapacity(u, e)
	if err != nil {
		return capacityFields{}, err
	}
	if approx {
		d.Warnf(u.String(), "infinite capacity represented as expandable from zero")
	}

	return capacityFields{
		Capacity:         spec.Existing,
		Expandable:       spec.Expandable,
		ExpansionMin:     spec.ExpansionMin,
		ExpansionMax:     spec.ExpansionMax,
		ExpansionBounded: spec.ExpansionBounded,
		ExpansionCost:    spec.ExpansionCost,
	}, nil
}

// warnDroppedEdgeFeatures reports edge parameters neither techs nor
// transmission links can carry: ramping gradients and on/off commitment.
func warnDroppedEdgeFeatures(u core.Uid, e core.Edge, d *diag.Collector) {
	if e.PositiveGradient != 0 || e.NegativeGradient != 0 {
		d.Warnf(u.String(), "ramping gradients are not representable and were dropped")
	}
	if e.NonConvex != nil {
		d.Warnf(u.String(), "on/off commitment parameters are not representable and were dropped")
	}
}

// mapBus maps a canonical bus to a location.
func mapBus(b core.Bus) Location {
	return Location{Name: b.U.String()}
}

// mapSource maps a canonical source to a supply tech at its bus's location.
func mapSource(s core.Source, d *diag.Collector) (Tech, error) {
	cf, err := normalizeEdge(s.U, s.Outflow, d)
	if err != nil {
		return Tech{}, err
	}
	warnDroppedEdgeFeatures(s.U, s.Outflow, d)

	return Tech{
		Name:             s.U.String(),
		Function:         FuncSupply,
		Location:         s.Bus.String(),
		CarrierOut:       s.U.Carrier,
		Capacity:         cf.Capacity,
		Expandable:       cf.Expandable,
		ExpansionMin:     cf.ExpansionMin,
		ExpansionMax:     cf.ExpansionMax,
		ExpansionBounded: cf.ExpansionBounded,
		ExpansionCost:    cf.ExpansionCost,
		MarginalCost:     s.Outflow.Cost,
		CarbonRate:       s.Outflow.Emission,
	}, nil
}

// mapSink maps a canonical sink to a demand tech. Sink-side rates are native
// here. The demand series itself is attached by the translator, which owns
// the timeseries registry.
func mapSink(s core.Sink, d *diag.Collector) (Tech, error) {
	cf, err := normalizeEdge(s.U, s.Inflow, d)
	if err != nil {
		return Tech{}, err
	}
	warnDroppedEdgeFeatures(s.U, s.Inflow, d)

	return Tech{
		Name:         s.U.String(),
		Function:     FuncDemand,
		Location:     s.Bus.String(),
		CarrierIn:    s.U.Carrier,
		Capacity:     cf.Capacity,
		MarginalCost: s.Inflow.Cost,
		CarbonRate:   s.Inflow.Emission,
	}, nil
}

// mapTransformer maps a canonical transformer to a conversion tech.
// Multi-output conversion is native, chp-tagged components included, but
// per-carrier cost and emission cannot be priced independently: they
// accumulate onto the primary carrier, and the input-side rates fold in
// through the conversion efficiency.
func mapTransformer(t core.Transformer, d *diag.Collector) (Tech, error) {
	primary, secondaries, err := trans.PrimaryCarrier(t)
	if err != nil {
		return Tech{}, err
	}

	cf, err := normalizeEdge(t.U, primary.Flow, d)
	if err != nil {
		return Tech{}, err
	}

	warnDroppedEdgeFeatures(t.U, t.InFlow, d)
	warnDroppedEdgeFeatures(t.U, primary.Flow, d)
	for _, sec := range secondaries {
		warnDroppedEdgeFeatures(t.U, sec.Flow, d)
	}

	cost, emission := trans.AccumulateOnPrimary(primary, secondaries)
	if cost != primary.Flow.Cost || emission != primary.Flow.Emission {
		d.Warnf(t.U.String(), "per-carrier cost/emission accumulated onto primary carrier %q", primary.Carrier)
	}
	cost += t.InFlow.Cost / primary.Efficiency
	emission += t.InFlow.Emission / primary.Efficiency
	if t.InFlow.Cost != 0 || t.InFlow.Emission != 0 {
		d.Warnf(t.U.String(), "input-side rates folded into marginal rates through efficiency %g", primary.Efficiency)
	}

	tech := Tech{
		Name:       t.U.String(),
		Function:   FuncConversion,
		Location:   primary.Bus.String(),
		LocationIn: t.Inputs[0].String(),
		CarrierIn:  t.U.Carrier,
		CarrierOut: primary.Carrier,
		Efficiency: primary.Efficiency,

		Capacity:         cf.Capacity,
		Expandable:       cf.Expandable,
		ExpansionMin:     cf.ExpansionMin,
		ExpansionMax:     cf.ExpansionMax,
		ExpansionBounded: cf.ExpansionBounded,
		ExpansionCost:    cf.ExpansionCost,

		MarginalCost: cost,
		CarbonRate:   emission,
	}

	if len(secondaries) > 0 {
		tech.CarrierOut2 = secondaries[0].Carrier
		tech.Location2 = secondaries[0].Bus.String()
		tech.Ratio2 = trans.SecondaryRatio(primary, secondaries[0])
	}
	if len(secondaries) > 1 {
		tech.CarrierOut3 = secondaries[1].Carrier
		tech.Location3 = secondaries[1].Bus.String()
		tech.Ratio3 = trans.SecondaryRatio(primary, secondaries[1])
	}

	return tech, nil
}

// mapStorage maps a canonical storage to a storage tech. One efficiency
// only: asymmetric pairs collapse to their geometric mean with a diagnostic.
// The cyclic flag is native per tech.
func mapStorage(s core.Storage, d *diag.Collector) (Tech, error) {
	cf, err := normalizeEdge(s.U, s.Flow, d)
	if err != nil {
		return Tech{}, err
	}
	warnDroppedEdgeFeatures(s.U, s.Flow, d)

	eff := s.InflowEfficiency
	if s.Asymmetric() {
		eff = trans.GeometricMean(s.InflowEfficiency, s.OutflowEfficiency)
		d.Warnf(s.U.String(), "asymmetric storage efficiency (%g in, %g out) collapsed to geometric mean %g",
			s.InflowEfficiency, s.OutflowEfficiency, eff)
	}

	return Tech{
		Name:     s.U.String(),
		Function: FuncStorage,
		Location: s.Bus.String(),

		Capacity:     cf.Capacity,
		MarginalCost: s.Flow.Cost,
		CarbonRate:   s.Flow.Emission,

		StorageCapacity:   s.Capacity,
		InitialSoc:        s.InitialSoc,
		FinalSoc:          s.FinalSoc,
		StandingLoss:      -s.IdleChangeRate,
		StorageEfficiency: eff,
		Cyclic:            s.Cyclic,
	}, nil
}

// syntheticLocation derives the intermediate location a connector expansion
// needs: same identity fields, bus kind, synthetic origin.
func syntheticLocation(c core.Connector) core.Uid {
	u := c.U
	u.Kind = core.KindBus
	u.Origin = core.OriginSynthetic

	return u
}

// mapConnector expands a canonical connector into two lossy directional
// links plus one zero-loss auxiliary link through a synthetic intermediate
// location: A→B direct, B→L lossy, L→A lossless. Transmission admits one
// link per location pair regardless of direction, so the return direction
// cannot reuse the A–B pair as a plain opposing link.
func mapConnector(c core.Connector, d *diag.Collector) ([]TransmissionLink, Location, error) {
	fAB, err := normalizeEdge(c.U, c.FlowAB, d)
	if err != nil {
		return nil, Location{}, err
	}
	fBA, err := normalizeEdge(c.U, c.FlowBA, d)
	if err != nil {
		return nil, Location{}, err
	}
	for _, e := range []core.Edge{c.FlowAB, c.FlowBA} {
		warnDroppedEdgeFeatures(c.U, e, d)
	}

	name := c.U.String()
	mid := syntheticLocation(c).String()

	links := []TransmissionLink{
		{
			Name: name, From: c.BusA.String(), To: c.BusB.String(),
			Efficiency: c.EfficiencyAB,
			Capacity:   fAB.Capacity, Expandable: fAB.Expandable,
			ExpansionMin: fAB.ExpansionMin, ExpansionMax: fAB.ExpansionMax,
			ExpansionBounded: fAB.ExpansionBounded, ExpansionCost: fAB.ExpansionCost,
			MarginalCost: c.FlowAB.Cost, CarbonRate: c.FlowAB.Emission,
		},
		{
			Name: name, From: c.BusB.String(), To: mid,
			Efficiency: c.EfficiencyBA,
			Capacity:   fBA.Capacity, Expandable: fBA.Expandable,
			ExpansionMin: fBA.ExpansionMin, ExpansionMax: fBA.ExpansionMax,
			ExpansionBounded: fBA.ExpansionBounded, ExpansionCost: fBA.ExpansionCost,
			MarginalCost: c.FlowBA.Cost, CarbonRate: c.FlowBA.Emission,
		},
		{
			Name: mid, From: mid, To: c.BusA.String(),
			Efficiency: 1,
			Auxiliary:  true,
			Capacity:   fBA.Capacity,
		},
	}

	return links, Location{Name: mid}, nil
}
