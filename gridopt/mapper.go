package gridopt

import (
	"github.com/katalvlaran/fluxcast/core"
	"github.com/katalvlaran/fluxcast/diag"
	"github.com/katalvlaran/fluxcast/trans"
)

// capacityFields is the shared normalized capacity block for generators and
// links, plus the original-capacity bookkeeping the zero-starting-capacity
// encoding needs.
type capacityFields struct {
	PNom           float64
	PNomExtendable bool
	PNomMin        float64
	PNomMax        float64
	PNomBounded    bool

	CapitalCost float64

	// original is non-zero when installed capacity was encoded as a minimum
	// expansion bound; offset is the capital cost already implied by it.
	original float64
	offset   float64
}

// zeroStart is the bookkeeping one mapped entity hands back to the
// translator: the objective offset its expansion floor implies and the
// pre-translation capacity the floor encodes. original stays zero when the
// encoding did not apply.
type zeroStart struct {
	offset   float64
	original float64
}

func (f capacityFields) bookkeeping() zeroStart {
	return zeroStart{offset: f.offset, original: f.original}
}

// normalizeForZeroStart maps an edge's capacity onto this backend's
// expansion model. The backend cannot combine firm installed capacity with
// expandability: when both are requested, the installed part becomes the
// minimum expansion bound and the implied capital cost is returned as an
// objective offset for downstream correction.
func normalizeForZeroStart(u core.Uid, e core.Edge, d *diag.Collector) (capacityFields, error) {
	spec, approx, err := trans.NormalizeCapacity(u, e)
	if err != nil {
		return capacityFields{}, err
	}
	if approx {
		d.Warnf(u.String(), "infinite capacity represented as expandable from zero")
	}

	f := capacityFields{CapitalCost: spec.ExpansionCost}

	if !spec.Expandable {
		f.PNom = spec.Existing

		return f, nil
	}

	f.PNomExtendable = true
	f.PNomMin = spec.ExpansionMin
	f.PNomMax = spec.ExpansionMax
	f.PNomBounded = spec.ExpansionBounded

	if spec.Existing > 0 {
		// Zero-starting-capacity encoding: the already-built capacity becomes
		// the expansion floor; the capital cost implied by that floor is
		// "paid" in the backend objective and must be subtracted again during
		// global aggregation.
		if spec.Existing > f.PNomMin {
			f.PNomMin = spec.Existing
		}
		f.original = spec.Existing
		f.offset = spec.Existing * spec.ExpansionCost
		d.Warnf(u.String(), "installed capacity %g encoded as minimum expansion bound", spec.Existing)
	}

	return f, nil
}

// commitmentFromEdge converts canonical on/off parameters.
func commitmentFromEdge(e core.Edge) *Commitment {
	if e.NonConvex == nil {
		return nil
	}

	return &Commitment{
		StartUpCost:   e.NonConvex.StartupCost,
		ShutDownCost:  e.NonConvex.ShutdownCost,
		MinUpTime:     e.NonConvex.MinUptime,
		MinDownTime:   e.NonConvex.MinDowntime,
		InitialStatus: e.NonConvex.InitialStatus,
	}
}

// warnDroppedGradients reports ramping limits no record here can carry.
func warnDroppedGradients(u core.Uid, e core.Edge, d *diag.Collector) {
	if e.PositiveGradient != 0 || e.NegativeGradient != 0 {
		d.Warnf(u.String(), "ramping gradients are not representable and were dropped")
	}
}

// warnDroppedCommitment reports on/off parameters on edges whose mapped
// record has no commitment interface.
func warnDroppedCommitment(u core.Uid, e core.Edge, d *diag.Collector) {
	if e.NonConvex != nil {
		d.Warnf(u.String(), "on/off commitment parameters are not representable here and were dropped")
	}
}

// mapBus maps a canonical bus to a native bus record.
func mapBus(b core.Bus) Bus {
	return Bus{Name: b.U.String()}
}

// mapSource maps a canonical source to a generator.
func mapSource(s core.Source, d *diag.Collector) (Generator, zeroStart, error) {
	cf, err := normalizeForZeroStart(s.U, s.Outflow, d)
	if err != nil {
		return Generator{}, zeroStart{}, err
	}
	warnDroppedGradients(s.U, s.Outflow, d)

	return Generator{
		Name:           s.U.String(),
		Bus:            s.Bus.String(),
		PNom:           cf.PNom,
		PNomExtendable: cf.PNomExtendable,
		PNomMin:        cf.PNomMin,
		PNomMax:        cf.PNomMax,
		PNomBounded:    cf.PNomBounded,
		MarginalCost:   s.Outflow.Cost,
		CapitalCost:    cf.CapitalCost,
		CarbonRate:     s.Outflow.Emission,
		Commitment:     commitmentFromEdge(s.Outflow),
	}, cf.bookkeeping(), nil
}

// mapSink maps a canonical sink to a load. Loads have no cost interface in
// this vocabulary; a priced sink loses its rates, with a diagnostic.
func mapSink(s core.Sink, d *diag.Collector) Load {
	if s.Inflow.Cost != 0 || s.Inflow.Emission != 0 {
		d.Warnf(s.U.String(), "sink-side cost/emission rates are not representable on loads and were dropped")
	}
	warnDroppedGradients(s.U, s.Inflow, d)
	warnDroppedCommitment(s.U, s.Inflow, d)

	return Load{
		Name: s.U.String(),
		Bus:  s.Bus.String(),
		PSet: s.Demand.Clone(), // demand positive: inverted sign convention
	}
}

// mapConnector maps a canonical connector to two one-directional links
// sharing the connector's name.
func mapConnector(c core.Connector, d *diag.Collector) ([]Link, zeroStart, error) {
	fAB, err := normalizeForZeroStart(c.U, c.FlowAB, d)
	if err != nil {
		return nil, zeroStart{}, err
	}
	fBA, err := normalizeForZeroStart(c.U, c.FlowBA, d)
	if err != nil {
		return nil, zeroStart{}, err
	}
	for _, e := range []core.Edge{c.FlowAB, c.FlowBA} {
		warnDroppedGradients(c.U, e, d)
		warnDroppedCommitment(c.U, e, d)
	}

	name := c.U.String()
	links := []Link{
		{
			Name: name, From: c.BusA.String(), To: c.BusB.String(),
			Efficiency: c.EfficiencyAB,
			PNom:       fAB.PNom, PNomExtendable: fAB.PNomExtendable,
			PNomMin: fAB.PNomMin, PNomMax: fAB.PNomMax, PNomBounded: fAB.PNomBounded,
			MarginalCost: c.FlowAB.Cost, CapitalCost: fAB.CapitalCost, CarbonRate: c.FlowAB.Emission,
		},
		{
			Name: name, From: c.BusB.String(), To: c.BusA.String(),
			Efficiency: c.EfficiencyBA,
			PNom:       fBA.PNom, PNomExtendable: fBA.PNomExtendable,
			PNomMin: fBA.PNomMin, PNomMax: fBA.PNomMax, PNomBounded: fBA.PNomBounded,
			MarginalCost: c.FlowBA.Cost, CapitalCost: fBA.CapitalCost, CarbonRate: c.FlowBA.Emission,
		},
	}

	// The legs share one bookkeeping key: offsets accumulate (each floor is
	// paid in the objective), while the original capacity keeps the larger
	// leg, the same representative extraction keeps for the shared name.
	zs := zeroStart{offset: fAB.offset + fBA.offset, original: fAB.original}
	if fBA.original > zs.original {
		zs.original = fBA.original
	}

	return links, zs, nil
}

// mapGeneratorLike collapses a single-output transformer into a generator on
// its output bus. The returned Collapse record keeps the conversion
// efficiency and former input bus for the pruning pass and for extraction.
func mapGeneratorLike(t core.Transformer, d *diag.Collector) (Generator, Collapse, zeroStart, error) {
	out := t.Outputs[0]
	cf, err := normalizeForZeroStart(t.U, out.Flow, d)
	if err != nil {
		return Generator{}, Collapse{}, zeroStart{}, err
	}
	warnDroppedGradients(t.U, out.Flow, d)
	warnDroppedGradients(t.U, t.InFlow, d)
	warnDroppedCommitment(t.U, t.InFlow, d) // the output-side commitment is carried

	// The input interface disappears in the collapse; its rates fold into
	// the generator's marginal rates through the conversion efficiency
	// (one output unit consumes 1/efficiency input units).
	cost := out.Flow.Cost + t.InFlow.Cost/out.Efficiency
	emission := out.Flow.Emission + t.InFlow.Emission/out.Efficiency
	if t.InFlow.Cost != 0 || t.InFlow.Emission != 0 {
		d.Warnf(t.U.String(), "input-side rates folded into generator marginal rates through efficiency %g", out.Efficiency)
	}

	gen := Generator{
		Name:           t.U.String(),
		Bus:            out.Bus.String(),
		PNom:           cf.PNom,
		PNomExtendable: cf.PNomExtendable,
		PNomMin:        cf.PNomMin,
		PNomMax:        cf.PNomMax,
		PNomBounded:    cf.PNomBounded,
		MarginalCost:   cost,
		CapitalCost:    cf.CapitalCost,
		CarbonRate:     emission,
		Commitment:     commitmentFromEdge(out.Flow),
	}
	col := Collapse{InputBus: t.Inputs[0].String(), Efficiency: out.Efficiency}
	d.Infof(t.U.String(), "single-output transformer collapsed into a generator")

	return gen, col, cf.bookkeeping(), nil
}

// mapLinkLike maps a multi-output transformer onto a link with extra output
// legs. Per-carrier cost and emission cannot be priced independently here;
// they accumulate onto the primary interface, with a diagnostic.
func mapLinkLike(t core.Transformer, d *diag.Collector) (Link, zeroStart, error) {
	primary, secondaries, err := trans.PrimaryCarrier(t)
	if err != nil {
		return Link{}, zeroStart{}, err
	}

	cf, err := normalizeForZeroStart(t.U, primary.Flow, d)
	if err != nil {
		return Link{}, zeroStart{}, err
	}

	warnDroppedGradients(t.U, t.InFlow, d)
	warnDroppedCommitment(t.U, t.InFlow, d)
	warnDroppedGradients(t.U, primary.Flow, d)
	warnDroppedCommitment(t.U, primary.Flow, d)
	for _, sec := range secondaries {
		warnDroppedGradients(t.U, sec.Flow, d)
		warnDroppedCommitment(t.U, sec.Flow, d)
	}

	// MarginalCost/CarbonRate are per unit of primary output: the secondary
	// interfaces and the input interface both accumulate onto the primary.
	cost, emission := trans.AccumulateOnPrimary(primary, secondaries)
	if cost != primary.Flow.Cost || emission != primary.Flow.Emission {
		d.Warnf(t.U.String(), "per-carrier cost/emission accumulated onto primary carrier %q", primary.Carrier)
	}
	cost += t.InFlow.Cost / primary.Efficiency
	emission += t.InFlow.Emission / primary.Efficiency

	l := Link{
		Name:    t.U.String(),
		From:    t.Inputs[0].String(),
		To:      primary.Bus.String(),
		Carrier: primary.Carrier,

		Efficiency: primary.Efficiency,

		PNom: cf.PNom, PNomExtendable: cf.PNomExtendable,
		PNomMin: cf.PNomMin, PNomMax: cf.PNomMax, PNomBounded: cf.PNomBounded,

		MarginalCost: cost,
		CapitalCost:  cf.CapitalCost,
		CarbonRate:   emission,
	}

	if len(secondaries) > 0 {
		l.To2 = secondaries[0].Bus.String()
		l.Carrier2 = secondaries[0].Carrier
		l.Efficiency2 = secondaries[0].Efficiency
	}
	if len(secondaries) > 1 {
		l.To3 = secondaries[1].Bus.String()
		l.Carrier3 = secondaries[1].Carrier
		l.Efficiency3 = secondaries[1].Efficiency
	}

	return l, cf.bookkeeping(), nil
}

// mapStorage maps a canonical storage to a store. Asymmetric efficiencies
// collapse to their geometric mean. The cyclic request is returned for the
// network-wide resolution in the consistency pass.
func mapStorage(s core.Storage, d *diag.Collector) (Store, bool) {
	eff := s.InflowEfficiency
	if s.Asymmetric() {
		eff = trans.GeometricMean(s.InflowEfficiency, s.OutflowEfficiency)
		d.Warnf(s.U.String(), "asymmetric storage efficiency (%g in, %g out) collapsed to geometric mean %g",
			s.InflowEfficiency, s.OutflowEfficiency, eff)
	}
	warnDroppedGradients(s.U, s.Flow, d)
	warnDroppedCommitment(s.U, s.Flow, d)

	return Store{
		Name:                s.U.String(),
		Bus:                 s.Bus.String(),
		ECapacity:           s.Capacity,
		EInitial:            s.InitialSoc,
		EFinal:              s.FinalSoc,
		StandingLoss:        -s.IdleChangeRate,
		RoundTripEfficiency: eff,
		MarginalCost:        s.Flow.Cost,
		CapitalCost:         0,
	}, s.Cyclic
}
