package decide

import (
	"strings"
	"testing"

	"hivewatch/models"
)

func preds(pairs ...any) []models.Prediction {
	out := make([]models.Prediction, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, models.Prediction{
			Label:       pairs[i].(string),
			Probability: pairs[i+1].(float64),
		})
	}
	return out
}

func TestDecide(t *testing.T) {
	e := New(DefaultPolicy())

	tests := []struct {
		name           string
		preds          []models.Prediction
		wantHoneybee   bool
		wantConfidence int
		wantLabelPart  string
	}{
		{
			name:           "negative only rejects with zero confidence",
			preds:          preds("cellular telephone", 0.80),
			wantHoneybee:   false,
			wantConfidence: 0,
			wantLabelPart:  "cellular telephone",
		},
		{
			name:           "honeycomb floor overrides low probability",
			preds:          preds("honeycomb", 0.40, "ant", 0.10),
			wantHoneybee:   true,
			wantConfidence: 95,
			wantLabelPart:  "Rockbee/Honeybee Detected",
		},
		{
			name:           "apiary floor",
			preds:          preds("apiary, bee house", 0.12),
			wantHoneybee:   true,
			wantConfidence: 95,
			wantLabelPart:  "Rockbee/Honeybee Detected",
		},
		{
			name:           "positive above threshold accepts at raw confidence",
			preds:          preds("bee", 0.62),
			wantHoneybee:   true,
			wantConfidence: 62,
			wantLabelPart:  "Rockbee/Honeybee Detected",
		},
		{
			name:           "exactly at accept threshold rejects",
			preds:          preds("wasp", 0.35),
			wantHoneybee:   false,
			wantConfidence: 35,
			wantLabelPart:  "Rockbee/Honeybee Detected",
		},
		{
			name:           "just above accept threshold accepts",
			preds:          preds("wasp", 0.36),
			wantHoneybee:   true,
			wantConfidence: 36,
			wantLabelPart:  "Rockbee/Honeybee Detected",
		},
		{
			name:           "negative ignored when a positive exists",
			preds:          preds("ant", 0.90, "hive", 0.50),
			wantHoneybee:   true,
			wantConfidence: 50,
			wantLabelPart:  "Rockbee/Honeybee Detected",
		},
		{
			name:           "high-confidence generic insect tentatively accepted",
			preds:          preds("insect", 0.60),
			wantHoneybee:   true,
			wantConfidence: 60,
			wantLabelPart:  "Potential Insect: insect",
		},
		{
			name:           "low-confidence generic insect not accepted",
			preds:          preds("winged invertebrate", 0.42),
			wantHoneybee:   false,
			wantConfidence: 42,
			wantLabelPart:  "Potential Insect",
		},
		{
			name:           "unrelated top label rejects with zero confidence",
			preds:          preds("park bench", 0.77),
			wantHoneybee:   false,
			wantConfidence: 0,
			wantLabelPart:  "Identified: park bench (Not a hive)",
		},
		{
			name:           "empty prediction list rejects",
			preds:          nil,
			wantHoneybee:   false,
			wantConfidence: 0,
			wantLabelPart:  "No classifier predictions",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := e.Decide(tc.preds)
			if out.IsHoneybee != tc.wantHoneybee {
				t.Errorf("IsHoneybee = %v, want %v", out.IsHoneybee, tc.wantHoneybee)
			}
			if out.Confidence != tc.wantConfidence {
				t.Errorf("Confidence = %d, want %d", out.Confidence, tc.wantConfidence)
			}
			joined := strings.Join(out.Labels, " | ")
			if !strings.Contains(joined, tc.wantLabelPart) {
				t.Errorf("Labels = %q, want mention of %q", joined, tc.wantLabelPart)
			}
		})
	}
}

func TestNegativeOverrideProperty(t *testing.T) {
	e := New(DefaultPolicy())
	// Any list with a negative match and no positive match must reject with
	// zero confidence, regardless of probabilities or ordering.
	lists := [][]models.Prediction{
		preds("mirror", 0.99),
		preds("nematode", 0.50, "spider", 0.40),
		preds("ant", 0.01, "cockroach", 0.99, "fountain", 0.30),
	}
	for _, l := range lists {
		out := e.Decide(l)
		if out.IsHoneybee || out.Confidence != 0 {
			t.Errorf("Decide(%v) = %+v, want reject with confidence 0", l, out)
		}
	}
}

func TestCustomPolicy(t *testing.T) {
	e := New(Policy{AcceptThreshold: 80, UnambiguousFloor: 90, InsectThreshold: 10})

	out := e.Decide(preds("bee", 0.62))
	if out.IsHoneybee {
		t.Errorf("confidence 62 should reject under threshold 80")
	}
	out = e.Decide(preds("honeycomb", 0.40))
	if out.Confidence != 90 {
		t.Errorf("Confidence = %d, want floored 90", out.Confidence)
	}
	out = e.Decide(preds("insect", 0.20))
	if !out.IsHoneybee {
		t.Errorf("confidence 20 should accept under insect threshold 10")
	}
}
