package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"hivewatch/classify"
	"hivewatch/failure"
	"hivewatch/models"
)

// handleHealth reports service liveness plus whether the model is warm.
func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(healthResp{
		Status:      "UP",
		ModelLoaded: a.classifier.Loaded(),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleVerifyImage runs one capture through the classifier and the
// acceptance rules. Rejection is a normal 200 response, not an error.
func (a *App) handleVerifyImage(w http.ResponseWriter, r *http.Request) {
	var req verifyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.ImageData == "" {
		failure.ErrNoImage.Write(w, r)
		return
	}

	raw, err := classify.DecodeDataURL(req.ImageData)
	if err != nil {
		failure.BadImage(err).Write(w, r)
		return
	}
	img, err := classify.Preprocess(raw)
	if err != nil {
		failure.BadImage(err).Write(w, r)
		return
	}

	preds, err := a.classifier.Classify(r.Context(), img)
	if err != nil {
		if errors.Is(err, classify.ErrUnavailable) {
			failure.ErrModelUnavailable.Write(w, r)
			return
		}
		failure.Internal(err).Write(w, r)
		return
	}

	out := a.engine.Decide(preds)
	top := preds
	if len(top) > 3 {
		top = top[:3]
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(models.VerificationResult{
		IsHoneybee:  out.IsHoneybee,
		Confidence:  out.Confidence,
		Labels:      out.Labels,
		Predictions: top,
		Message:     "AI Analysis Complete",
	})
}
