package eval

// #region imports
import (
	"regexp"
	"strconv"
	"strings"
)

// #endregion

// #region score-parsing

type categoryScores struct {
	communication  float64
	technical      float64
	problemSolving float64
	confidence     float64
}

func (c categoryScores) overall() float64 {
	return (c.communication + c.technical + c.problemSolving + c.confidence) / 4
}

var scorePatterns = map[string]*regexp.Regexp{
	"communication":   regexp.MustCompile(`(?i)Communication:\s*(\d+)`),
	"technical":       regexp.MustCompile(`(?i)Technical:\s*(\d+)`),
	"problem_solving": regexp.MustCompile(`(?i)Problem Solving:\s*(\d+)`),
	"confidence":      regexp.MustCompile(`(?i)Confidence:\s*(\d+)`),
}

// parseScores pulls the "Category: N" lines out of the scoring response.
// Any line that fails to parse falls back to def.
func parseScores(text string, def float64) categoryScores {
	extract := func(key string) float64 {
		m := scorePatterns[key].FindStringSubmatch(text)
		if m == nil {
			return def
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return def
		}
		return v
	}
	return categoryScores{
		communication:  extract("communication"),
		technical:      extract("technical"),
		problemSolving: extract("problem_solving"),
		confidence:     extract("confidence"),
	}
}

// #endregion

// #region strengths-weaknesses-parsing

// splitStrengthsWeaknesses parses the STRENGTHS:/WEAKNESSES: blocks into two
// bullet lists, each capped at max entries. Returns empty lists when the
// response does not follow the format.
func splitStrengthsWeaknesses(text string, max int) (strengths, weaknesses []string) {
	if !strings.Contains(text, "STRENGTHS:") || !strings.Contains(text, "WEAKNESSES:") {
		return nil, nil
	}
	parts := strings.SplitN(text, "WEAKNESSES:", 2)
	strengths = parseBullets(strings.Replace(parts[0], "STRENGTHS:", "", 1), max)
	weaknesses = parseBullets(parts[1], max)
	return strengths, weaknesses
}

func parseBullets(block string, max int) []string {
	var out []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-"))
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == max {
			break
		}
	}
	return out
}

// #endregion
