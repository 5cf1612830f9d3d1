// Package optimizer searches for improved layouts with simulated
// annealing over small structural mutations, using the constraint
// validator as a hard feasibility gate and the scorer as the
// objective.
package optimizer

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/heliosworks/habplanner/pkg/constraints"
	"github.com/heliosworks/habplanner/pkg/habitat"
	"github.com/heliosworks/habplanner/pkg/scoring"
)

const (
	temperatureStart = 1.0
	temperatureEnd   = 0.05
)

// Optimize runs the annealing loop for a fixed iteration budget and
// returns the best accepted layout with the full step history. A zero
// seed falls back to the layout's recorded seed.
//
// The input layout is never mutated: current, best, and every
// candidate are private deep copies, and all randomness flows from the
// one seeded source created here.
func Optimize(layout *habitat.Layout, iterations int, settings habitat.ConstraintSettings, weights habitat.ScoreWeights, seed int64) (*habitat.OptimizationResult, error) {
	if iterations < 1 {
		return nil, fmt.Errorf("iterations must be >= 1, got %d", iterations)
	}
	if seed == 0 {
		seed = layout.Metadata.Seed
		if seed == 0 {
			seed = 42
		}
	}
	rng := rand.New(rand.NewSource(seed))

	current := layout.Clone()
	bestMetrics, currentScore, err := scoring.Evaluate(current, settings, weights)
	if err != nil {
		return nil, err
	}
	best := current.Clone()
	bestScore := currentScore

	history := []habitat.OptimizationLogEntry{
		{Iteration: 0, Score: currentScore, Accepted: true, Reason: "initial"},
	}

	for step := 1; step <= iterations; step++ {
		candidate := current.Clone()
		op := opKind(rng.Intn(int(numOps)))
		op.apply(candidate, rng)

		validation := constraints.Validate(candidate, settings)
		if !validation.Passed {
			history = append(history, habitat.OptimizationLogEntry{
				Iteration: step,
				Score:     currentScore,
				Accepted:  false,
				Reason:    "constraint_fail:" + strings.Join(validation.FailedRules, ","),
			})
			continue
		}

		candidateMetrics, candidateScore, err := scoring.Evaluate(candidate, settings, weights)
		if err != nil {
			return nil, err
		}

		// Geometric cooling; temperature depends only on the step
		// index, not on how many candidates were accepted.
		temperature := temperatureStart * math.Pow(temperatureEnd/temperatureStart, float64(step)/float64(iterations))
		delta := candidateScore - currentScore
		accept := delta >= 0 || rng.Float64() < math.Exp(delta/math.Max(temperature, 1e-6))

		if accept {
			current = candidate
			currentScore = candidateScore
			history = append(history, habitat.OptimizationLogEntry{
				Iteration: step,
				Score:     currentScore,
				Accepted:  true,
				Reason:    op.String(),
			})
			if candidateScore > bestScore {
				best = candidate.Clone()
				bestMetrics = candidateMetrics
				bestScore = candidateScore
			}
		} else {
			history = append(history, habitat.OptimizationLogEntry{
				Iteration: step,
				Score:     currentScore,
				Accepted:  false,
				Reason:    "anneal_reject",
			})
		}
	}

	return &habitat.OptimizationResult{
		Layout:  best,
		Metrics: bestMetrics,
		Score:   bestScore,
		History: history,
	}, nil
}
