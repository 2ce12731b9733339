// Package archive is the durable side of the system: finished transcripts,
// scored reports, and the per-transition audit log outlive the ephemeral
// session store's TTL here.
package archive

// #region imports
import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mockstage/interview-engine/internal/eval"
	"github.com/mockstage/interview-engine/internal/session"
	_ "modernc.org/sqlite"
)

// #endregion

// #region schema

const schema = `
CREATE TABLE IF NOT EXISTS interviews (
	interview_id    TEXT PRIMARY KEY,
	role            TEXT NOT NULL,
	difficulty      TEXT NOT NULL,
	status          TEXT NOT NULL,
	question_count  INTEGER NOT NULL,
	transcript      TEXT NOT NULL,
	history_json    TEXT NOT NULL,
	notes_json      TEXT NOT NULL,
	created_at      TEXT NOT NULL,
	completed_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS reports (
	interview_id           TEXT PRIMARY KEY,
	overall_score          REAL NOT NULL,
	communication_score    REAL NOT NULL,
	technical_score        REAL NOT NULL,
	problem_solving_score  REAL NOT NULL,
	confidence_score       REAL NOT NULL,
	strengths_json         TEXT NOT NULL,
	weaknesses_json        TEXT NOT NULL,
	improvement_areas_json TEXT NOT NULL,
	overall_evaluation     TEXT NOT NULL,
	recommendations        TEXT NOT NULL,
	question_feedback_json TEXT NOT NULL,
	created_at             TEXT NOT NULL,
	FOREIGN KEY (interview_id) REFERENCES interviews(interview_id)
);

CREATE TABLE IF NOT EXISTS session_transitions (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id     TEXT NOT NULL,
	turn_id        TEXT NOT NULL,
	from_status    TEXT NOT NULL,
	to_status      TEXT NOT NULL,
	event          TEXT NOT NULL,
	question_count INTEGER NOT NULL,
	degraded       INTEGER NOT NULL DEFAULT 0,
	reason         TEXT,
	created_at     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_session_transitions_session
ON session_transitions(session_id);
`

// #endregion

// #region archive-struct

// Archive persists interviews and reports in SQLite.
type Archive struct {
	db *sql.DB
}

// New opens the archive database and runs migrations.
func New(dbPath string) (*Archive, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Archive{db: db}, nil
}

// Close closes the underlying database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

// DB returns the underlying *sql.DB for the transition log.
func (a *Archive) DB() *sql.DB {
	return a.db
}

// #endregion

// #region interview-record

// InterviewRecord is a finished interview as stored durably.
type InterviewRecord struct {
	ID            string                   `json:"interview_id"`
	Role          string                   `json:"role"`
	Difficulty    string                   `json:"difficulty"`
	Status        session.Status           `json:"status"`
	QuestionCount int                      `json:"question_count"`
	Transcript    string                   `json:"transcript"`
	History       []session.Turn           `json:"conversation_history"`
	Notes         []session.EvaluationNote `json:"evaluation_notes"`
	CreatedAt     time.Time                `json:"created_at"`
	CompletedAt   time.Time                `json:"completed_at"`
}

// #endregion

// #region save-transcript

// SaveTranscript stores the final state of a terminated session.
func (a *Archive) SaveTranscript(st session.State) error {
	historyJSON, err := json.Marshal(st.History)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	notesJSON, err := json.Marshal(st.Notes)
	if err != nil {
		return fmt.Errorf("marshal notes: %w", err)
	}

	_, err = a.db.Exec(
		`INSERT INTO interviews
		 (interview_id, role, difficulty, status, question_count, transcript, history_json, notes_json, created_at, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(interview_id) DO UPDATE SET
		   status = excluded.status,
		   question_count = excluded.question_count,
		   transcript = excluded.transcript,
		   history_json = excluded.history_json,
		   notes_json = excluded.notes_json,
		   completed_at = excluded.completed_at`,
		st.ID, st.Role, st.Difficulty, string(st.Status), st.QuestionCount,
		st.Transcript(), string(historyJSON), string(notesJSON),
		st.CreatedAt.Format(time.RFC3339Nano), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save transcript: %w", err)
	}
	return nil
}

// #endregion

// #region save-report

// SaveReport stores the scored report for an archived interview.
func (a *Archive) SaveReport(interviewID string, r eval.Report) error {
	strengthsJSON, err := json.Marshal(r.Strengths)
	if err != nil {
		return fmt.Errorf("marshal strengths: %w", err)
	}
	weaknessesJSON, err := json.Marshal(r.Weaknesses)
	if err != nil {
		return fmt.Errorf("marshal weaknesses: %w", err)
	}
	areasJSON, err := json.Marshal(r.ImprovementAreas)
	if err != nil {
		return fmt.Errorf("marshal improvement areas: %w", err)
	}
	feedbackJSON, err := json.Marshal(r.QuestionFeedback)
	if err != nil {
		return fmt.Errorf("marshal feedback: %w", err)
	}

	_, err = a.db.Exec(
		`INSERT INTO reports
		 (interview_id, overall_score, communication_score, technical_score, problem_solving_score,
		  confidence_score, strengths_json, weaknesses_json, improvement_areas_json,
		  overall_evaluation, recommendations, question_feedback_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(interview_id) DO UPDATE SET
		   overall_score = excluded.overall_score,
		   communication_score = excluded.communication_score,
		   technical_score = excluded.technical_score,
		   problem_solving_score = excluded.problem_solving_score,
		   confidence_score = excluded.confidence_score,
		   strengths_json = excluded.strengths_json,
		   weaknesses_json = excluded.weaknesses_json,
		   improvement_areas_json = excluded.improvement_areas_json,
		   overall_evaluation = excluded.overall_evaluation,
		   recommendations = excluded.recommendations,
		   question_feedback_json = excluded.question_feedback_json`,
		interviewID, r.OverallScore, r.CommunicationScore, r.TechnicalScore,
		r.ProblemSolvingScore, r.ConfidenceScore, string(strengthsJSON),
		string(weaknessesJSON), string(areasJSON), r.OverallEvaluation, r.Recommendations,
		string(feedbackJSON), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

// #endregion

// #region getters

// GetInterview loads one archived interview.
func (a *Archive) GetInterview(id string) (InterviewRecord, error) {
	var rec InterviewRecord
	var status, historyJSON, notesJSON, createdAt, completedAt string

	err := a.db.QueryRow(
		`SELECT interview_id, role, difficulty, status, question_count, transcript,
		        history_json, notes_json, created_at, completed_at
		 FROM interviews WHERE interview_id = ?`, id,
	).Scan(&rec.ID, &rec.Role, &rec.Difficulty, &status, &rec.QuestionCount,
		&rec.Transcript, &historyJSON, &notesJSON, &createdAt, &completedAt)
	if err == sql.ErrNoRows {
		return InterviewRecord{}, fmt.Errorf("interview %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return InterviewRecord{}, fmt.Errorf("get interview: %w", err)
	}

	rec.Status = session.Status(status)
	if err := json.Unmarshal([]byte(historyJSON), &rec.History); err != nil {
		return InterviewRecord{}, fmt.Errorf("decode history: %w", err)
	}
	if err := json.Unmarshal([]byte(notesJSON), &rec.Notes); err != nil {
		return InterviewRecord{}, fmt.Errorf("decode notes: %w", err)
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	rec.CompletedAt, _ = time.Parse(time.RFC3339Nano, completedAt)
	return rec, nil
}

// GetReport loads the scored report for an interview.
func (a *Archive) GetReport(interviewID string) (eval.Report, error) {
	var r eval.Report
	var strengthsJSON, weaknessesJSON, areasJSON, feedbackJSON string

	err := a.db.QueryRow(
		`SELECT overall_score, communication_score, technical_score, problem_solving_score,
		        confidence_score, strengths_json, weaknesses_json, improvement_areas_json,
		        overall_evaluation, recommendations, question_feedback_json
		 FROM reports WHERE interview_id = ?`, interviewID,
	).Scan(&r.OverallScore, &r.CommunicationScore, &r.TechnicalScore,
		&r.ProblemSolvingScore, &r.ConfidenceScore, &strengthsJSON,
		&weaknessesJSON, &areasJSON, &r.OverallEvaluation, &r.Recommendations, &feedbackJSON)
	if err == sql.ErrNoRows {
		return eval.Report{}, fmt.Errorf("report %s: %w", interviewID, ErrNotFound)
	}
	if err != nil {
		return eval.Report{}, fmt.Errorf("get report: %w", err)
	}

	if err := json.Unmarshal([]byte(strengthsJSON), &r.Strengths); err != nil {
		return eval.Report{}, fmt.Errorf("decode strengths: %w", err)
	}
	if err := json.Unmarshal([]byte(weaknessesJSON), &r.Weaknesses); err != nil {
		return eval.Report{}, fmt.Errorf("decode weaknesses: %w", err)
	}
	if err := json.Unmarshal([]byte(areasJSON), &r.ImprovementAreas); err != nil {
		return eval.Report{}, fmt.Errorf("decode improvement areas: %w", err)
	}
	if err := json.Unmarshal([]byte(feedbackJSON), &r.QuestionFeedback); err != nil {
		return eval.Report{}, fmt.Errorf("decode feedback: %w", err)
	}
	return r, nil
}

// ListInterviews returns the most recently completed interviews, newest first.
func (a *Archive) ListInterviews(limit int) ([]InterviewRecord, error) {
	rows, err := a.db.Query(
		`SELECT interview_id, role, difficulty, status, question_count, completed_at
		 FROM interviews ORDER BY completed_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list interviews: %w", err)
	}
	defer rows.Close()

	var out []InterviewRecord
	for rows.Next() {
		var rec InterviewRecord
		var status, completedAt string
		if err := rows.Scan(&rec.ID, &rec.Role, &rec.Difficulty, &status, &rec.QuestionCount, &completedAt); err != nil {
			return nil, fmt.Errorf("scan interview: %w", err)
		}
		rec.Status = session.Status(status)
		rec.CompletedAt, _ = time.Parse(time.RFC3339Nano, completedAt)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// #endregion
