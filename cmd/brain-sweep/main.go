// Command brain-sweep measures how long Brian's Brain stays active for a
// range of initial firing probabilities.
package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"brains3d/internal/platform/kvflag"
	"brains3d/internal/sims/briansbrain"
)

type job struct {
	probability float64
	seed        int64
}

type summary struct {
	probability float64
	runs        int
	extinct     int
	meanFiring  float64
	peakFiring  int
	meanLife    float64
}

func main() {
	steps := flag.Int("steps", 200, "generations to simulate per run")
	seeds := flag.Int("seeds", 8, "runs per probability")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	probs := flag.String("p", "0.05,0.1,0.15,0.2,0.3,0.5", "comma-separated initial firing probabilities")
	var overrides kvflag.List
	flag.Var(&overrides, "set", "base config override in key=value form (repeatable)")
	flag.Parse()

	base := briansbrain.FromMap(parseOverrides(overrides))
	probabilities, err := parseProbabilities(*probs)
	if err != nil {
		log.Fatal(err)
	}

	var jobsList []job
	for _, p := range probabilities {
		for s := 0; s < *seeds; s++ {
			jobsList = append(jobsList, job{probability: p, seed: base.Seed + int64(s)})
		}
	}

	fmt.Printf("Sweeping %d runs on a %dx%dx%d grid (%d workers, %d steps)\n",
		len(jobsList), base.Width, base.Height, base.Depth, *workers, *steps)

	start := time.Now()
	jobs := make(chan job)
	results := make(chan briansbrain.ActivityResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				cfg := base
				cfg.Probability = j.probability
				cfg.Seed = j.seed
				res, err := briansbrain.MeasureActivity(cfg, *steps)
				if err != nil {
					log.Printf("p=%.3f seed=%d: %v", j.probability, j.seed, err)
					continue
				}
				results <- res
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, j := range jobsList {
			jobs <- j
		}
		close(jobs)
	}()

	var all []briansbrain.ActivityResult
	for res := range results {
		all = append(all, res)
	}
	cells := base.Width * base.Height * base.Depth

	fmt.Printf("\nResults (elapsed %s):\n", time.Since(start).Round(time.Millisecond))
	for _, s := range summarize(all, *steps) {
		fmt.Printf("p=%.3f runs=%d extinct=%d/%d mean firing=%.1f (%.2f%%) peak=%d mean lifetime=%.1f\n",
			s.probability, s.runs, s.extinct, s.runs, s.meanFiring, 100*s.meanFiring/float64(cells), s.peakFiring, s.meanLife)
	}
}

func summarize(all []briansbrain.ActivityResult, steps int) []summary {
	byProb := map[float64]*summary{}
	for _, res := range all {
		s, ok := byProb[res.Probability]
		if !ok {
			s = &summary{probability: res.Probability}
			byProb[res.Probability] = s
		}
		s.runs++
		s.meanFiring += res.MeanFiring
		if res.PeakFiring > s.peakFiring {
			s.peakFiring = res.PeakFiring
		}
		life := steps
		if res.ExtinctAt >= 0 {
			s.extinct++
			life = res.ExtinctAt
		}
		s.meanLife += float64(life)
	}

	out := make([]summary, 0, len(byProb))
	for _, s := range byProb {
		s.meanFiring /= float64(s.runs)
		s.meanLife /= float64(s.runs)
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].probability < out[j].probability })
	return out
}

func parseProbabilities(list string) ([]float64, error) {
	var out []float64
	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		p, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("probability %q: %w", field, err)
		}
		if p < 0 || p > 1 {
			return nil, fmt.Errorf("probability %v outside [0,1]", p)
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no probabilities given")
	}
	return out, nil
}

func parseOverrides(list kvflag.List) map[string]string {
	values, malformed := list.Parse()
	for _, kv := range malformed {
		log.Printf("ignoring malformed override %q", kv)
	}
	return values
}
