// Command validate performs offline integrity checks on a predicted-weather
// dataset file. The bot trusts these properties at runtime and never
// re-checks them, so run this after regenerating a dataset:
//
//   - every line parses (known kind, RFC 3339 timestamp, HH:MM duration)
//   - starts are strictly ascending
//   - events do not overlap
//
// Usage:
//
//	go run ./cmd/validate -dataset ./predicted_dataset
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jaidTw/ngs-discord-weather-bot/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	datasetFile := flag.String("dataset", "./predicted_dataset", "path to the predicted-weather dataset file")
	flag.Parse()

	os.Exit(run(*datasetFile))
}

func run(path string) int {
	dataset, err := domain.LoadDataset(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAIL parse: %v\n", err)
		return 1
	}
	fmt.Printf("parsed %d events from %s\n", len(dataset), path)

	phases := []*phase{
		checkOrdering(dataset),
		checkOverlaps(dataset),
	}

	failed := false
	for _, p := range phases {
		if p.passed() {
			fmt.Printf("PASS %s\n", p.name)
			continue
		}
		failed = true
		fmt.Printf("FAIL %s\n", p.name)
		for _, e := range p.errors {
			fmt.Printf("  - %s\n", e)
		}
	}

	printStats(dataset)

	if failed {
		return 1
	}
	return 0
}

// checkOrdering verifies starts are strictly ascending.
func checkOrdering(dataset domain.Dataset) *phase {
	p := &phase{name: "ordering"}
	for i := 1; i < len(dataset); i++ {
		if !dataset[i].Start.After(dataset[i-1].Start) {
			p.errorf("event %d (%s) does not start after event %d (%s)",
				i, dataset[i].Start.Format(time.RFC3339),
				i-1, dataset[i-1].Start.Format(time.RFC3339))
		}
	}
	return p
}

// checkOverlaps verifies each event ends before the next begins.
func checkOverlaps(dataset domain.Dataset) *phase {
	p := &phase{name: "overlaps"}
	for i := 1; i < len(dataset); i++ {
		if dataset[i].Start.Before(dataset[i-1].End()) {
			p.errorf("event %d starts at %s, before event %d ends at %s",
				i, dataset[i].Start.Format(time.RFC3339),
				i-1, dataset[i-1].End().Format(time.RFC3339))
		}
	}
	return p
}

func printStats(dataset domain.Dataset) {
	counts := map[domain.Kind]int{}
	for _, e := range dataset {
		counts[e.Kind]++
	}
	fmt.Printf("kinds: clear=%d cloudy=%d rain=%d storm=%d\n",
		counts[domain.Clear], counts[domain.Cloudy], counts[domain.Rain], counts[domain.Storm])
	if len(dataset) > 0 {
		fmt.Printf("range: %s .. %s\n",
			dataset[0].Start.Format(time.RFC3339),
			dataset[len(dataset)-1].End().Format(time.RFC3339))
	}
}
