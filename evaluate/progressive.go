package evaluate

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/streamknn"
	"github.com/hupe1980/streamknn/feature"
	"github.com/hupe1980/streamknn/stream"
)

// Model is an online regressor that can be validated progressively. M is
// the concrete model type, so chainable Learn signatures satisfy the
// interface directly.
type Model[M any] interface {
	// Learn folds one labeled observation into the model.
	Learn(x feature.Features, y float64) M

	// Predict estimates the target for x.
	Predict(x feature.Features) (float64, error)
}

// Progressive runs test-then-train validation: every sample is scored
// against the model before the model trains on it, so each prediction is
// made on data the model has never seen. Predictions the model declines
// during warm-up are skipped rather than scored. It stops at the first
// stream or model error.
func Progressive[M Model[M]](src iter.Seq2[stream.Sample, error], model M, metrics ...Metric) error {
	var i int

	for sample, err := range src {
		i++

		if err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}

		if err := testThenTrain(model, sample, metrics); err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}
	}

	return nil
}

// Compare runs progressive validation for several models and returns the
// final score per model name. Models are evaluated concurrently, one
// goroutine each; source is invoked once per model so every run replays
// the same samples from its own stream. Evaluation stops at the first
// stream or model error.
func Compare[M Model[M]](ctx context.Context, source func() iter.Seq2[stream.Sample, error], models map[string]M, newMetric func() Metric) (map[string]float64, error) {
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}

	sort.Strings(names)

	scores := make([]float64, len(names))

	g, ctx := errgroup.WithContext(ctx)

	for i, name := range names {
		model := models[name]

		g.Go(func() error {
			metric := newMetric()

			var j int
			for sample, err := range source() {
				j++

				if err != nil {
					return fmt.Errorf("model %s, sample %d: %w", name, j, err)
				}

				if err := ctx.Err(); err != nil {
					return err
				}

				if err := testThenTrain(model, sample, []Metric{metric}); err != nil {
					return fmt.Errorf("model %s, sample %d: %w", name, j, err)
				}
			}

			scores[i] = metric.Get()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]float64, len(names))
	for i, name := range names {
		out[name] = scores[i]
	}

	return out, nil
}

func testThenTrain[M Model[M]](model M, sample stream.Sample, metrics []Metric) error {
	yPred, err := model.Predict(sample.X)

	switch {
	case errors.Is(err, streamknn.ErrInsufficientData):
		// Warm-up, nothing to score yet.
	case err != nil:
		return err
	default:
		for _, m := range metrics {
			m.Update(sample.Y, yPred)
		}
	}

	model.Learn(sample.X, sample.Y)

	return nil
}
