package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mockstage/interview-engine/internal/archive"
	"github.com/mockstage/interview-engine/internal/controller"
	"github.com/mockstage/interview-engine/internal/eval"
	"github.com/mockstage/interview-engine/internal/genai"
	"github.com/mockstage/interview-engine/internal/session"
	"github.com/mockstage/interview-engine/internal/store"
)

// #region main

func main() {
	role := flag.String("role", "Software Engineer", "interview role")
	difficulty := flag.String("difficulty", "medium", "easy, medium, or hard")
	maxQuestions := flag.Int("questions", 5, "number of questions")
	skills := flag.String("skills", "", "comma-separated candidate skills")
	years := flag.Int("years", 0, "years of experience")
	dbPath := flag.String("db", envOr("INTERVIEW_DB", "interviews.db"), "archive database path")
	flag.Parse()

	gen := buildGenerator()

	arch, err := archive.New(*dbPath)
	if err != nil {
		log.Fatalf("open archive: %v", err)
	}
	defer arch.Close()

	cfg := controller.DefaultConfig()
	cfg.MaxQuestions = *maxQuestions
	ctrl := controller.New(gen, store.NewMemory(), arch, cfg)

	profile := session.CandidateProfile{
		ExperienceYears: *years,
		TargetRoles:     []string{*role},
	}
	if *skills != "" {
		for _, s := range strings.Split(*skills, ",") {
			profile.Skills = append(profile.Skills, strings.TrimSpace(s))
		}
	}

	ctx := context.Background()
	res, err := ctrl.StartInterview(ctx, *role, *difficulty, profile)
	if err != nil {
		log.Fatalf("start interview: %v", err)
	}

	fmt.Printf("Mock interview: %s (%s), %d questions. Type 'quit' to stop early.\n\n",
		*role, *difficulty, *maxQuestions)
	printTurn(res)

	scanner := bufio.NewScanner(os.Stdin)
	for res.State.Status != session.StatusTerminated {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "quit" || answer == "exit" {
			fmt.Println("Interview abandoned.")
			return
		}
		if answer == "" {
			continue
		}

		res, err = ctrl.Respond(ctx, res.State.ID, answer)
		if err != nil {
			log.Fatalf("respond: %v", err)
		}
		printTurn(res)
	}

	if res.Report != nil {
		printReport(*res.Report)
	}
}

// #endregion

// #region output

func printTurn(res controller.Result) {
	if res.Event.Thinking != "" {
		fmt.Printf("  [%s]\n", res.Event.Thinking)
	}
	if res.Event.Degraded {
		fmt.Println("  (generation degraded, response may be incomplete)")
	}
	switch {
	case res.State.Status == session.StatusTerminated:
		fmt.Println("\nInterview complete.")
	case res.Event.Question != "":
		// The feedback turn, if any, is the last interviewer line before
		// the question itself.
		if n := len(res.State.History); n >= 2 && res.State.History[n-2].Speaker == session.SpeakerInterviewer {
			fmt.Printf("\n%s\n", res.State.History[n-2].Content)
		}
		fmt.Printf("\nQ%d: %s\n", res.Event.QuestionCount, res.Event.Question)
	}
}

func printReport(r eval.Report) {
	fmt.Println("\n--- Report ---")
	fmt.Printf("Overall: %.1f  Communication: %.1f  Technical: %.1f  Problem Solving: %.1f  Confidence: %.1f\n",
		r.OverallScore, r.CommunicationScore, r.TechnicalScore, r.ProblemSolvingScore, r.ConfidenceScore)
	if len(r.Strengths) > 0 {
		fmt.Println("\nStrengths:")
		for _, s := range r.Strengths {
			fmt.Printf("  - %s\n", s)
		}
	}
	if len(r.ImprovementAreas) > 0 {
		fmt.Println("\nAreas for improvement:")
		for _, a := range r.ImprovementAreas {
			fmt.Printf("  - [%s] %s\n    %s\n", a.Priority, a.Area, a.ActionPlan)
		}
	} else if len(r.Weaknesses) > 0 {
		fmt.Println("\nAreas for improvement:")
		for _, w := range r.Weaknesses {
			fmt.Printf("  - %s\n", w)
		}
	}
	if r.Recommendations != "" {
		fmt.Printf("\nRecommendations:\n%s\n", r.Recommendations)
	}
	out, err := json.MarshalIndent(r, "", "  ")
	if err == nil {
		fmt.Printf("\nFull report JSON:\n%s\n", out)
	}
}

// #endregion

// #region wiring

func buildGenerator() genai.Client {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		log.Println("[CLI] OPENAI_API_KEY not set, using stub generator")
		return genai.NewScripted()
	}
	oc := genai.DefaultOpenAIConfig()
	oc.APIKey = key
	if base := os.Getenv("OPENAI_BASE_URL"); base != "" {
		oc.BaseURL = base
	}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		oc.Model = model
	}
	return genai.NewOpenAIClient(oc)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion
