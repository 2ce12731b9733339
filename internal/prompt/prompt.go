// Package prompt builds the text sent to the generation service for each
// stage of an interview: questioning, response analysis, feedback, and the
// post-interview scoring pipeline. All builders are pure functions.
package prompt

// #region imports
import (
	"fmt"
	"strings"

	"github.com/mockstage/interview-engine/internal/session"
)

// #endregion

// #region system-prompts

const (
	SystemQuestion   = "You are an expert interviewer. Generate one clear, focused interview question."
	SystemAnalysis   = "You are an expert interviewer evaluating candidate responses."
	SystemEvaluation = "You are an expert interview evaluator providing detailed, constructive feedback."
)

// #endregion

// #region question

// Question builds the next-question prompt from the session configuration,
// the candidate profile, and the bounded conversation window.
func Question(role, difficulty string, profile session.CandidateProfile, window string, questionNumber int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("You are an experienced interviewer conducting a %s level interview for a %s position.\n\n", difficulty, role))
	b.WriteString("Candidate Profile:\n")
	b.WriteString(profile.Summary())
	b.WriteString("\n\nPrevious conversation:\n")
	b.WriteString(window)
	b.WriteString("\n\nGenerate the next interview question. The question should:\n")
	b.WriteString("1. Be relevant to the role and candidate's background\n")
	b.WriteString(fmt.Sprintf("2. Match the %s difficulty level\n", difficulty))
	b.WriteString("3. Build upon previous responses if applicable\n")
	b.WriteString("4. Test different aspects (technical, behavioral, problem-solving)\n\n")
	b.WriteString(fmt.Sprintf("Question %d:", questionNumber))
	return b.String()
}

// #endregion

// #region analysis

// Analysis builds the per-answer evaluation prompt.
func Analysis(question, response string) string {
	var b strings.Builder
	b.WriteString("Analyze this interview response:\n\n")
	b.WriteString(fmt.Sprintf("Question: %s\n", question))
	b.WriteString(fmt.Sprintf("Response: %s\n\n", response))
	b.WriteString("Evaluate the response on:\n")
	b.WriteString("1. Relevance and directness\n")
	b.WriteString("2. Technical accuracy (if applicable)\n")
	b.WriteString("3. Communication clarity\n")
	b.WriteString("4. Depth of knowledge\n")
	b.WriteString("5. Problem-solving approach\n\n")
	b.WriteString("Provide brief evaluation notes (2-3 sentences):")
	return b.String()
}

// #endregion

// #region feedback

// Feedback builds the acknowledgment-or-follow-up prompt.
func Feedback(question, response string) string {
	var b strings.Builder
	b.WriteString("Based on the candidate's response, provide a brief acknowledgment and decide if a follow-up question is needed.\n\n")
	b.WriteString(fmt.Sprintf("Question: %s\n", question))
	b.WriteString(fmt.Sprintf("Response: %s\n\n", response))
	b.WriteString("Provide either:\n")
	b.WriteString("- A brief acknowledgment and move on, OR\n")
	b.WriteString("- A follow-up question to dig deeper\n\n")
	b.WriteString("Keep it conversational and natural:")
	return b.String()
}

// #endregion

// #region overall-evaluation

// OverallEvaluation builds the whole-interview evaluation prompt.
func OverallEvaluation(transcript string, notes []session.EvaluationNote, role string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Provide a comprehensive evaluation of this interview for a %s position.\n\n", role))
	b.WriteString("Interview Transcript:\n")
	b.WriteString(transcript)
	b.WriteString("\n\nQuestion-by-question evaluations:\n")
	b.WriteString(FormatNotes(notes))
	b.WriteString("\nProvide a detailed evaluation covering:\n")
	b.WriteString("1. Overall performance\n")
	b.WriteString("2. Communication skills\n")
	b.WriteString("3. Technical knowledge\n")
	b.WriteString("4. Problem-solving abilities\n")
	b.WriteString("5. Confidence and presence\n")
	b.WriteString("6. Key strengths\n")
	b.WriteString("7. Areas for improvement\n\n")
	b.WriteString("Evaluation:")
	return b.String()
}

// #endregion

// #region scoring

// Scoring builds the numeric score-extraction prompt. The response is parsed
// with eval's score patterns, so the format block must stay stable.
func Scoring(overallEvaluation string) string {
	var b strings.Builder
	b.WriteString("Based on this evaluation, provide numerical scores (0-100) for:\n")
	b.WriteString("1. Communication\n")
	b.WriteString("2. Technical Knowledge\n")
	b.WriteString("3. Problem Solving\n")
	b.WriteString("4. Confidence\n\n")
	b.WriteString("Evaluation:\n")
	b.WriteString(overallEvaluation)
	b.WriteString("\n\nProvide scores in this exact format:\n")
	b.WriteString("Communication: [score]\n")
	b.WriteString("Technical: [score]\n")
	b.WriteString("Problem Solving: [score]\n")
	b.WriteString("Confidence: [score]")
	return b.String()
}

// #endregion

// #region strengths-weaknesses

// StrengthsWeaknesses builds the strengths/weaknesses extraction prompt.
func StrengthsWeaknesses(evaluation string) string {
	var b strings.Builder
	b.WriteString("From this evaluation, extract:\n")
	b.WriteString("1. Top 3-5 strengths\n")
	b.WriteString("2. Top 3-5 weaknesses/areas for improvement\n\n")
	b.WriteString("Evaluation:\n")
	b.WriteString(evaluation)
	b.WriteString("\n\nFormat:\n")
	b.WriteString("STRENGTHS:\n- [strength 1]\n- [strength 2]\n...\n\n")
	b.WriteString("WEAKNESSES:\n- [weakness 1]\n- [weakness 2]\n...")
	return b.String()
}

// #endregion

// #region improvement-area

// ImprovementArea builds the action-plan prompt for one weakness.
func ImprovementArea(role, weakness string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("For this weakness in a %s interview:\n", role))
	b.WriteString(fmt.Sprintf("%q\n\n", weakness))
	b.WriteString("Provide:\n")
	b.WriteString("1. Specific action items (2-3)\n")
	b.WriteString("2. Resources or practice methods\n")
	b.WriteString("3. Timeline for improvement\n\n")
	b.WriteString("Keep it practical and actionable:")
	return b.String()
}

// #endregion

// #region recommendations

// Recommendations builds the final preparation-advice prompt. The listed
// areas are the per-weakness improvement areas generated earlier.
func Recommendations(role string, overall, communication, technical, problemSolving, confidence float64, areas []string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Based on these interview scores for a %s position:\n", role))
	b.WriteString(fmt.Sprintf("- Overall: %.1f\n", overall))
	b.WriteString(fmt.Sprintf("- Communication: %.1f\n", communication))
	b.WriteString(fmt.Sprintf("- Technical: %.1f\n", technical))
	b.WriteString(fmt.Sprintf("- Problem Solving: %.1f\n", problemSolving))
	b.WriteString(fmt.Sprintf("- Confidence: %.1f\n\n", confidence))
	b.WriteString("And these improvement areas:\n")
	for _, a := range areas {
		b.WriteString(fmt.Sprintf("- %s\n", a))
	}
	b.WriteString("\nProvide:\n")
	b.WriteString("1. Next steps for interview preparation\n")
	b.WriteString("2. Recommended resources or courses\n")
	b.WriteString("3. Practice strategies\n")
	b.WriteString("4. Timeline for improvement\n\n")
	b.WriteString("Recommendations:")
	return b.String()
}

// #endregion

// #region format-notes

// FormatNotes renders evaluation notes as numbered Q/A/Evaluation blocks.
func FormatNotes(notes []session.EvaluationNote) string {
	var b strings.Builder
	for i, n := range notes {
		b.WriteString(fmt.Sprintf("Q%d: %s\n", i+1, n.Question))
		b.WriteString(fmt.Sprintf("A%d: %s\n", i+1, n.Response))
		b.WriteString(fmt.Sprintf("Evaluation: %s\n\n", n.Evaluation))
	}
	return b.String()
}

// #endregion
