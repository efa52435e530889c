// Package decide turns ranked classifier output into an accept/reject
// verdict. The classifier is a general object-recognition model, not a hive
// detector, so the verdict comes from keyword matching over its labels:
// an ordered rule list evaluated first-match-wins.
package decide

import (
	"fmt"
	"math"
	"strings"

	"hivewatch/models"
)

// Policy holds the decision thresholds. The defaults reproduce the tuning
// the mobile client shipped with; treat them as adjustable, not validated.
type Policy struct {
	AcceptThreshold  int `yaml:"accept_threshold"`  // accept iff confidence strictly above
	UnambiguousFloor int `yaml:"unambiguous_floor"` // floor for honeycomb/apiary labels
	InsectThreshold  int `yaml:"insect_threshold"`  // for the generic-insect fallback
}

func DefaultPolicy() Policy {
	return Policy{
		AcceptThreshold:  35,
		UnambiguousFloor: 95,
		InsectThreshold:  50,
	}
}

// Outcome is the engine's verdict for one prediction list.
type Outcome struct {
	IsHoneybee bool
	Confidence int // 0..100
	Labels     []string
}

// rule inspects the predictions and either claims the decision or passes.
type rule struct {
	name  string
	apply func(e *Engine, preds []models.Prediction) (Outcome, bool)
}

type Engine struct {
	policy Policy
	rules  []rule
}

func New(policy Policy) *Engine {
	e := &Engine{policy: policy}
	e.rules = []rule{
		{name: "negative-override", apply: (*Engine).negativeOverride},
		{name: "positive-keyword", apply: (*Engine).positiveKeyword},
		{name: "generic-insect", apply: (*Engine).genericInsect},
		{name: "reject", apply: (*Engine).reject},
	}
	return e
}

// Decide evaluates the rules in order; the final rule always matches, so a
// verdict is returned for every input including an empty prediction list.
func (e *Engine) Decide(preds []models.Prediction) Outcome {
	for _, r := range e.rules {
		if out, ok := r.apply(e, preds); ok {
			return out
		}
	}
	return Outcome{Labels: []string{"No classifier predictions"}}
}

// negativeOverride rejects outright when a rejection keyword matched and no
// hive keyword did anywhere in the list.
func (e *Engine) negativeOverride(preds []models.Prediction) (Outcome, bool) {
	neg, negOK := firstMatch(preds, negativeKeywords)
	_, posOK := firstMatch(preds, positiveKeywords)
	if !negOK || posOK {
		return Outcome{}, false
	}
	return Outcome{
		IsHoneybee: false,
		Confidence: 0,
		Labels:     []string{fmt.Sprintf("Rejected: Identified as %s", neg.Label)},
	}, true
}

// positiveKeyword scores the first hive-family label. Honeycomb and apiary
// labels are unambiguous evidence, so their confidence is floored regardless
// of the model's raw probability.
func (e *Engine) positiveKeyword(preds []models.Prediction) (Outcome, bool) {
	match, ok := firstMatch(preds, positiveKeywords)
	if !ok {
		return Outcome{}, false
	}
	conf := scaleConfidence(match.Probability)
	lower := strings.ToLower(match.Label)
	if strings.Contains(lower, "honeycomb") || strings.Contains(lower, "apiary") {
		if conf < e.policy.UnambiguousFloor {
			conf = e.policy.UnambiguousFloor
		}
	}
	return Outcome{
		IsHoneybee: conf > e.policy.AcceptThreshold,
		Confidence: conf,
		Labels:     []string{"Rockbee/Honeybee Detected"},
	}, true
}

// genericInsect falls back to the top-ranked label when no keyword matched:
// a high-confidence generic insect is tentatively accepted.
func (e *Engine) genericInsect(preds []models.Prediction) (Outcome, bool) {
	if len(preds) == 0 {
		return Outcome{}, false
	}
	top := preds[0]
	lower := strings.ToLower(top.Label)
	if !strings.Contains(lower, "insect") && !strings.Contains(lower, "invertebrate") {
		return Outcome{}, false
	}
	conf := scaleConfidence(top.Probability)
	out := Outcome{
		Confidence: conf,
		Labels:     []string{fmt.Sprintf("Potential Insect: %s", top.Label)},
	}
	if conf > e.policy.InsectThreshold {
		out.IsHoneybee = true
		out.Labels = append(out.Labels, "Rockbee/Honeybee (High Confidence Insect)")
	}
	return out, true
}

// reject is the terminal rule.
func (e *Engine) reject(preds []models.Prediction) (Outcome, bool) {
	if len(preds) == 0 {
		return Outcome{
			IsHoneybee: false,
			Confidence: 0,
			Labels:     []string{"No classifier predictions"},
		}, true
	}
	return Outcome{
		IsHoneybee: false,
		Confidence: 0,
		Labels:     []string{fmt.Sprintf("Identified: %s (Not a hive)", preds[0].Label)},
	}, true
}

// firstMatch returns the first prediction in ranked order whose label
// contains any keyword, case-insensitively.
func firstMatch(preds []models.Prediction, keywords []string) (models.Prediction, bool) {
	for _, p := range preds {
		lower := strings.ToLower(p.Label)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return p, true
			}
		}
	}
	return models.Prediction{}, false
}

func scaleConfidence(probability float64) int {
	return int(math.Round(probability * 100))
}
