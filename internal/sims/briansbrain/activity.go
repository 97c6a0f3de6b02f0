package briansbrain

// ActivityResult summarises a headless run.
type ActivityResult struct {
	Probability float64
	Seed        int64

	StepsSimulated int
	PeakFiring     int
	MeanFiring     float64
	FinalFiring    int
	// ExtinctAt is the generation at which every cell was ready, or -1 if
	// the run was still active when it ended.
	ExtinctAt int
}

// MeasureActivity runs cfg for up to steps generations and records how much
// of the grid fires. A grid whose cells are all ready can never fire again,
// so the run stops there.
func MeasureActivity(cfg Config, steps int) (ActivityResult, error) {
	e, err := New(cfg)
	if err != nil {
		return ActivityResult{}, err
	}
	g := e.Grid()
	res := ActivityResult{Probability: cfg.Probability, Seed: cfg.Seed, ExtinctAt: -1}

	total := 0
	for step := 0; ; step++ {
		c := g.Census()
		if c.Firing > res.PeakFiring {
			res.PeakFiring = c.Firing
		}
		total += c.Firing
		res.FinalFiring = c.Firing
		if c.Firing == 0 && c.Refractory == 0 {
			res.ExtinctAt = step
			break
		}
		if step == steps {
			break
		}
		e.Step()
		res.StepsSimulated++
	}
	res.MeanFiring = float64(total) / float64(res.StepsSimulated+1)
	return res, nil
}
