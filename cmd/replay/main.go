package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/mockstage/interview-engine/internal/replay"
)

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "path to a replay fixture (JSON)")
	jsonOut := flag.Bool("json", false, "print replay results as JSON")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/fixture.json [--json]")
		os.Exit(2)
	}

	fx, err := replay.LoadFixture(*fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	results, err := replay.Run(context.Background(), fx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay failed: %v\n", err)
		os.Exit(1)
	}

	if *jsonOut {
		out, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
	} else {
		if fx.Description != "" {
			fmt.Printf("Fixture: %s\n", fx.Description)
		}
		fmt.Printf("%-12s %-24s %-6s %-20s %s\n", "TURN", "EVENT", "COUNT", "STATUS", "DEGRADED")
		for _, r := range results {
			fmt.Printf("%-12s %-24s %-6d %-20s %v\n",
				r.TurnID, r.EventKind, r.QuestionCount, r.Status, r.Degraded)
		}
	}

	if len(fx.Expected) == 0 {
		return
	}
	diffs := replay.Compare(results, fx.Expected)
	if len(diffs) == 0 {
		fmt.Println("replay matches expected results")
		return
	}
	fmt.Fprintf(os.Stderr, "replay diverged (%d mismatches):\n", len(diffs))
	for _, d := range diffs {
		fmt.Fprintf(os.Stderr, "  %s\n", d)
	}
	os.Exit(1)
}

// #endregion
