package experiments

import (
	"connect/experiments/metrics"
	"fmt"
)

// RunThroughputExperiment lets each depth play itself, for the same playing
// strength on both sides, and reports search nodes per second.
func RunThroughputExperiment(opts Options) ([]Summary, error) {
	configs := []metrics.AgentConfig{
		{ID: 1, Depth: 1},
		{ID: 2, Depth: 2},
		{ID: 3, Depth: 3},
		{ID: 4, Depth: 4},
		{ID: 5, Depth: 5},
		{ID: 6, Depth: 6},
	}
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{config, config})
	}
	return runExperiment("throughput", opts, configs, matchUps)
}

// Run dispatches an experiment by name.
func Run(name string, opts Options) ([]Summary, error) {
	switch name {
	case "depth":
		return RunDepthExperiment(opts)
	case "random_baseline":
		return RunRandomBaselineExperiment(opts)
	case "throughput":
		return RunThroughputExperiment(opts)
	}
	return nil, fmt.Errorf("unknown experiment %q", name)
}
