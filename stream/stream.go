// Package stream turns data files into sequences of labeled samples for
// online learning. Sources are lazy: rows are read one at a time while the
// consumer ranges over them, so arbitrarily large files fit in constant
// memory.
package stream

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/time/rate"

	"github.com/hupe1980/streamknn/feature"
)

// Sample is one labeled observation drawn from a stream.
type Sample struct {
	// X holds the named feature values of the observation.
	X feature.Features

	// Y is the regression target.
	Y float64
}

// CSVOptions configures how a CSV source is parsed.
type CSVOptions struct {
	// Comma is the field delimiter.
	Comma rune

	// Drop lists columns to exclude from the feature map. The target
	// column never needs to be listed here.
	Drop []string
}

// DefaultCSVOptions holds the default parsing configuration.
var DefaultCSVOptions = CSVOptions{
	Comma: ',',
}

// CSV reads labeled samples from r. The first record is the header; target
// names the column used as the label and every remaining column becomes a
// feature. Empty cells are treated as missing and omitted from the feature
// map. Malformed rows are yielded as errors so the consumer decides whether
// to skip them or stop.
func CSV(r io.Reader, target string, optFns ...func(o *CSVOptions)) iter.Seq2[Sample, error] {
	opts := DefaultCSVOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	return func(yield func(Sample, error) bool) {
		cr := csv.NewReader(r)
		cr.Comma = opts.Comma

		header, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				yield(Sample{}, errors.New("missing header row"))
				return
			}

			yield(Sample{}, fmt.Errorf("failed to read header: %w", err))

			return
		}

		targetCol := -1
		for i, name := range header {
			if name == target {
				targetCol = i
				break
			}
		}

		if targetCol < 0 {
			yield(Sample{}, fmt.Errorf("target column %q not found in header", target))
			return
		}

		dropped := make(map[string]bool, len(opts.Drop))
		for _, name := range opts.Drop {
			dropped[name] = true
		}

		for row := 2; ; row++ {
			record, err := cr.Read()
			if errors.Is(err, io.EOF) {
				return
			}

			if err != nil {
				if !yield(Sample{}, fmt.Errorf("row %d: %w", row, err)) {
					return
				}

				continue
			}

			sample, err := parseRecord(header, record, targetCol, dropped)
			if err != nil {
				if !yield(Sample{}, fmt.Errorf("row %d: %w", row, err)) {
					return
				}

				continue
			}

			if !yield(sample, nil) {
				return
			}
		}
	}
}

// Open reads labeled samples from a CSV file. Paths ending in ".gz" are
// transparently decompressed. The file is opened when iteration starts and
// closed when it ends.
func Open(path, target string, optFns ...func(o *CSVOptions)) iter.Seq2[Sample, error] {
	return func(yield func(Sample, error) bool) {
		f, err := os.Open(path)
		if err != nil {
			yield(Sample{}, fmt.Errorf("failed to open %s: %w", path, err))
			return
		}
		defer f.Close()

		var r io.Reader = f

		if strings.HasSuffix(path, ".gz") {
			gz, err := gzip.NewReader(f)
			if err != nil {
				yield(Sample{}, fmt.Errorf("failed to decompress %s: %w", path, err))
				return
			}
			defer gz.Close()

			r = gz
		}

		for sample, err := range CSV(r, target, optFns...) {
			if !yield(sample, err) {
				return
			}
		}
	}
}

// Throttle paces src so that at most perSecond samples are yielded per
// second. It stops early when ctx is canceled, yielding the context error
// last. Errors from src pass through without consuming rate budget.
func Throttle(ctx context.Context, src iter.Seq2[Sample, error], perSecond float64) iter.Seq2[Sample, error] {
	return func(yield func(Sample, error) bool) {
		limiter := rate.NewLimiter(rate.Limit(perSecond), 1)

		for sample, err := range src {
			if err != nil {
				if !yield(Sample{}, err) {
					return
				}

				continue
			}

			if err := limiter.Wait(ctx); err != nil {
				yield(Sample{}, err)
				return
			}

			if !yield(sample, nil) {
				return
			}
		}
	}
}

func parseRecord(header, record []string, targetCol int, dropped map[string]bool) (Sample, error) {
	if len(record) != len(header) {
		return Sample{}, fmt.Errorf("expected %d fields, got %d", len(header), len(record))
	}

	y, err := strconv.ParseFloat(record[targetCol], 64)
	if err != nil {
		return Sample{}, fmt.Errorf("target %q: %w", header[targetCol], err)
	}

	x := make(feature.Features, len(record)-1)

	for i, cell := range record {
		if i == targetCol || dropped[header[i]] || cell == "" {
			continue
		}

		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return Sample{}, fmt.Errorf("feature %q: %w", header[i], err)
		}

		x[header[i]] = v
	}

	return Sample{X: x, Y: y}, nil
}
