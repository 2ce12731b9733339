package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mockstage/interview-engine/internal/archive"
	"github.com/mockstage/interview-engine/internal/transitionlog"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to interviews.db")
	last := flag.Int("last", 20, "show N most recent interviews")
	interviewID := flag.String("interview", "", "show single interview detail")
	transitions := flag.Bool("transitions", false, "show transition log rows")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/interviews.db [--last N] [--interview id] [--transitions] [--json]")
		os.Exit(2)
	}

	arch, err := archive.New(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer arch.Close()

	if *interviewID != "" {
		err = runDetailMode(arch, *interviewID, *transitions, *jsonOut)
	} else {
		err = runListMode(arch, *last, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion

// #region list-mode

func runListMode(arch *archive.Archive, last int, jsonOut bool) error {
	recs, err := arch.ListInterviews(last)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(recs)
	}
	if len(recs) == 0 {
		fmt.Println("no interviews recorded")
		return nil
	}
	fmt.Printf("%-38s %-24s %-8s %-10s %s\n", "INTERVIEW", "ROLE", "QS", "STATUS", "COMPLETED")
	for _, r := range recs {
		fmt.Printf("%-38s %-24s %-8d %-10s %s\n",
			r.ID, truncate(r.Role, 24), r.QuestionCount, r.Status, r.CompletedAt.Format(time.RFC3339))
	}
	return nil
}

// #endregion

// #region detail-mode

func runDetailMode(arch *archive.Archive, id string, transitions, jsonOut bool) error {
	rec, err := arch.GetInterview(id)
	if err != nil {
		return err
	}

	if jsonOut {
		detail := map[string]any{"interview": rec}
		if report, err := arch.GetReport(id); err == nil {
			detail["report"] = report
		}
		if transitions {
			rows, err := transitionlog.List(arch.DB(), id, 0)
			if err != nil {
				return err
			}
			detail["transitions"] = rows
		}
		return printJSON(detail)
	}

	fmt.Printf("Interview %s\n", rec.ID)
	fmt.Printf("  role=%s difficulty=%s status=%s questions=%d\n",
		rec.Role, rec.Difficulty, rec.Status, rec.QuestionCount)
	fmt.Printf("  created=%s completed=%s\n\n", rec.CreatedAt.Format(time.RFC3339), rec.CompletedAt.Format(time.RFC3339))
	fmt.Println(rec.Transcript)

	if report, err := arch.GetReport(id); err == nil {
		fmt.Printf("\nScores: overall=%.1f communication=%.1f technical=%.1f problem_solving=%.1f confidence=%.1f\n",
			report.OverallScore, report.CommunicationScore, report.TechnicalScore,
			report.ProblemSolvingScore, report.ConfidenceScore)
	}

	if transitions {
		rows, err := transitionlog.List(arch.DB(), id, 0)
		if err != nil {
			return err
		}
		fmt.Printf("\n%-12s %-18s %-20s %-24s %s\n", "TURN", "FROM", "TO", "EVENT", "DEGRADED")
		for _, row := range rows {
			fmt.Printf("%-12s %-18s %-20s %-24s %v\n",
				row.TurnID, row.FromStatus, row.ToStatus, row.Event, row.Degraded)
		}
	}
	return nil
}

// #endregion

// #region helpers

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n-3]) + "..."
}

// #endregion
