package pickmodel

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"

	"github.com/jstittsworth/draft-assistant/internal/models"
	"github.com/jstittsworth/draft-assistant/pkg/logger"
)

// l2Lambda is the ridge penalty applied during fitting. Small enough to
// leave the fit essentially unconstrained, large enough to keep the
// optimizer away from separable-data blowups.
const l2Lambda = 1e-4

// ModelFitError reports that the historical pick data cannot support a
// fit: it is empty, contains unknown positions, or observes fewer than
// two distinct positions.
type ModelFitError struct {
	Reason string
}

func (e *ModelFitError) Error() string {
	return fmt.Sprintf("cannot fit pick model: %s", e.Reason)
}

// coeffs holds one position's binary logistic regression: intercept and
// the coefficient on the standardized overall pick number.
type coeffs struct {
	Intercept float64
	Pick      float64
}

// Model predicts which position an opposing team selects at a given
// overall pick number. One binary logistic regression per observed
// position; inference normalizes the per-position probabilities over
// whichever positions are still in play. Fit once per session and
// read-only afterwards.
type Model struct {
	weights  map[models.Position]coeffs
	pickMean float64
	pickStd  float64
}

// Train fits the model from historical pick records. It fails with
// ModelFitError when the data is empty or degenerate; a failed fit is
// never silently replaced with a uniform guess.
func Train(picks []models.HistoricalPick) (*Model, error) {
	if len(picks) == 0 {
		return nil, &ModelFitError{Reason: "no historical picks"}
	}

	xs := make([]float64, len(picks))
	distinct := make(map[models.Position]int)
	for i, pick := range picks {
		if _, ok := models.ParsePosition(string(pick.Position)); !ok {
			return nil, &ModelFitError{Reason: fmt.Sprintf("unknown position %q at pick %d", pick.Position, pick.Overall)}
		}
		xs[i] = float64(pick.Overall)
		distinct[pick.Position]++
	}
	if len(distinct) < 2 {
		return nil, &ModelFitError{Reason: fmt.Sprintf("need at least 2 distinct positions, observed %d", len(distinct))}
	}

	m := &Model{
		weights:  make(map[models.Position]coeffs, len(distinct)),
		pickMean: stat.Mean(xs, nil),
		pickStd:  stat.StdDev(xs, nil),
	}
	if m.pickStd == 0 || math.IsNaN(m.pickStd) {
		m.pickStd = 1
	}

	for _, pos := range models.Positions() {
		if distinct[pos] == 0 {
			continue
		}
		w, err := fitBinaryLogistic(picks, pos, m.pickMean, m.pickStd)
		if err != nil {
			return nil, &ModelFitError{Reason: fmt.Sprintf("position %s: %v", pos, err)}
		}
		m.weights[pos] = w
		logger.WithModelContext("pick_probability", len(picks)).WithFields(logrus.Fields{
			"position":  pos,
			"intercept": w.Intercept,
			"coef":      w.Pick,
			"samples":   distinct[pos],
		}).Debug("Fitted position regression")
	}

	return m, nil
}

// fitBinaryLogistic fits P(position == pos | pick) by minimizing the
// ridge-regularized log-loss with L-BFGS.
func fitBinaryLogistic(picks []models.HistoricalPick, pos models.Position, mean, std float64) (coeffs, error) {
	n := float64(len(picks))

	problem := optimize.Problem{
		Func: func(w []float64) float64 {
			loss := 0.0
			for _, pick := range picks {
				z := w[0] + w[1]*(float64(pick.Overall)-mean)/std
				y := 0.0
				if pick.Position == pos {
					y = 1.0
				}
				// log(1+exp(z)) - y*z, computed stably
				loss += math.Log1p(math.Exp(-math.Abs(z))) + math.Max(z, 0) - y*z
			}
			return loss/n + l2Lambda/2*(w[0]*w[0]+w[1]*w[1])
		},
		Grad: func(grad, w []float64) {
			grad[0], grad[1] = 0, 0
			for _, pick := range picks {
				x := (float64(pick.Overall) - mean) / std
				p := sigmoid(w[0] + w[1]*x)
				y := 0.0
				if pick.Position == pos {
					y = 1.0
				}
				grad[0] += p - y
				grad[1] += (p - y) * x
			}
			grad[0] = grad[0]/n + l2Lambda*w[0]
			grad[1] = grad[1]/n + l2Lambda*w[1]
		},
	}

	result, err := optimize.Minimize(problem, []float64{0, 0}, nil, &optimize.LBFGS{})
	if err != nil && !usableFit(result) {
		return coeffs{}, fmt.Errorf("optimizer: %w", err)
	}
	return coeffs{Intercept: result.X[0], Pick: result.X[1]}, nil
}

// usableFit reports whether a minimizer result is good enough to keep
// despite an error. The line search can stall once it is already at a
// minimum of the smooth convex loss; a finite iterate there is a valid
// fit, not bad data.
func usableFit(result *optimize.Result) bool {
	if result == nil || len(result.X) != 2 {
		return false
	}
	for _, x := range result.X {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return !math.IsNaN(result.F) && !math.IsInf(result.F, 0)
}

// Score returns the unnormalized probability that a team selects the
// position at the given overall pick number (1-based). Positions never
// observed in training score zero.
func (m *Model) Score(pos models.Position, pickNumber int) float64 {
	w, ok := m.weights[pos]
	if !ok {
		return 0
	}
	return sigmoid(w.Intercept + w.Pick*(float64(pickNumber)-m.pickMean)/m.pickStd)
}

// Probabilities returns a probability vector over the given positions
// at the given overall pick number, normalized to sum to 1. When every
// candidate position is untrained the vector is uniform; that only
// happens deep in a draft when the modeled positions are exhausted.
func (m *Model) Probabilities(pickNumber int, positions []models.Position) map[models.Position]float64 {
	probs := make(map[models.Position]float64, len(positions))
	total := 0.0
	for _, pos := range positions {
		s := m.Score(pos, pickNumber)
		probs[pos] = s
		total += s
	}
	if total == 0 {
		for _, pos := range positions {
			probs[pos] = 1.0 / float64(len(positions))
		}
		return probs
	}
	for pos := range probs {
		probs[pos] /= total
	}
	return probs
}

func sigmoid(z float64) float64 {
	if z > 20 {
		return 1
	}
	if z < -20 {
		return 0
	}
	return 1 / (1 + math.Exp(-z))
}
