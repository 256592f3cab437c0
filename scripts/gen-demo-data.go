//go:build ignore

// Generates a demo scenario: two JSON Lines observation windows where the
// checkout flow slows down in the second window, plus a scenario file
// wiring them together.
//
//	go run scripts/gen-demo-data.go demo
//	pulse replay --config demo/scenario.yaml
package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
)

type op struct {
	name     string
	category string
	baseMs   float64
	jitterMs float64
	count    int
}

var operations = []op{
	{"ui-render", "render", 18, 8, 40},
	{"state-update", "update", 35, 15, 25},
	{"form-generation", "generation", 150, 60, 10},
	{"keystroke", "interaction", 9, 5, 60},
	{"save-document", "network", 90, 30, 12},
	{"checkout", "network", 220, 40, 8},
}

const scenarioYAML = `title: Demo Editor Session
regressionThreshold: 0.15
windows:
  - label: baseline
    source: baseline.jsonl
  - label: current
    source: current.jsonl
output:
  formats: [json, html]
  dir: reports
`

func main() {
	dir := "demo"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatal(err)
	}

	writeWindow(filepath.Join(dir, "baseline.jsonl"), 1.0)
	writeWindow(filepath.Join(dir, "current.jsonl"), 1.5)

	scenarioPath := filepath.Join(dir, "scenario.yaml")
	if err := os.WriteFile(scenarioPath, []byte(scenarioYAML), 0644); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Demo scenario written to %s\n", scenarioPath)
	fmt.Printf("Try: pulse replay --config %s\n", scenarioPath)
}

// writeWindow emits one observation file. slowdown scales the checkout flow
// so the second window regresses against the first.
func writeWindow(path string, slowdown float64) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	offset := 0.0
	for _, o := range operations {
		for i := 0; i < o.count; i++ {
			duration := o.baseMs + rand.Float64()*o.jitterMs
			if o.name == "checkout" {
				duration *= slowdown
			}
			offset += rand.Float64() * 120
			fmt.Fprintf(f, `{"name":%q,"durationMs":%.2f,"category":%q,"offsetMs":%.1f}`+"\n",
				o.name, duration, o.category, offset)
		}
	}
}
