// Command genmock generates a deterministic mock predicted-weather dataset
// for local development and tests. Events are contiguous (each starts when
// the previous one ends), mirroring the rotating region weather the real
// predictor emits.
//
// Usage:
//
//	go run ./cmd/genmock -out ./predicted_dataset -days 2 -seed 1
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"
)

// kindWeights approximates how often a condition shows up in real data.
var kindWeights = []struct {
	name   string
	weight int
}{
	{"clear", 5},
	{"cloudy", 3},
	{"rain", 2},
	{"storm", 2},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "./predicted_dataset", "output dataset path")
	days := flag.Int("days", 2, "number of days to generate")
	seed := flag.Int64("seed", 1, "random seed, fixed for reproducible fixtures")
	startStr := flag.String("start", "2024-01-01T00:00:00+09:00", "timeline start (RFC 3339)")
	flag.Parse()

	start, err := time.Parse(time.RFC3339, *startStr)
	if err != nil {
		return fmt.Errorf("parse -start: %w", err)
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	rng := rand.New(rand.NewSource(*seed))
	w := bufio.NewWriter(f)

	end := start.AddDate(0, 0, *days)
	cursor := start
	lines := 0
	for cursor.Before(end) {
		kind := pickKind(rng)
		minutes := pickDuration(rng, kind)
		rerolls := rng.Intn(4)

		fmt.Fprintf(w, "%s %s %02d:%02d %d\n",
			kind, cursor.Format(time.RFC3339), minutes/60, minutes%60, rerolls)
		cursor = cursor.Add(time.Duration(minutes) * time.Minute)
		lines++
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Printf("wrote %d events to %s (%s .. %s)", lines, *out,
		start.Format(time.RFC3339), cursor.Format(time.RFC3339))
	return nil
}

func pickKind(rng *rand.Rand) string {
	total := 0
	for _, k := range kindWeights {
		total += k.weight
	}
	n := rng.Intn(total)
	for _, k := range kindWeights {
		if n < k.weight {
			return k.name
		}
		n -= k.weight
	}
	return kindWeights[0].name
}

// pickDuration returns a plausible length in minutes. Storms are short
// bursts, the rest fill longer stretches.
func pickDuration(rng *rand.Rand, kind string) int {
	if kind == "storm" {
		return 3 + rng.Intn(10) // 3..12 minutes
	}
	return 20 + rng.Intn(81) // 20..100 minutes
}
