package main

import (
	"encoding/json"
	"net/http"
	"time"

	"hivewatch/classify"
	"hivewatch/failure"
	"hivewatch/models"
)

// handleListReports returns all stored sightings, newest first.
func (a *App) handleListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := a.reports.ListAll(r.Context())
	if err != nil {
		failure.Storage(err).Write(w, r)
		return
	}
	if reports == nil {
		reports = []models.Report{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(reports)
}

// handleCreateReport stores a confirmed sighting. The image arrives either
// as a multipart file (gallery upload) or as a base64 data URL form value
// (camera frame); everything else comes as form fields.
func (a *App) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		failure.Validation("expected multipart form data").Write(w, r)
		return
	}

	var imagePath string
	if f, fh, err := r.FormFile("image"); err == nil {
		f.Close()
		p, err := a.media.SaveUpload(fh)
		if err != nil {
			failure.BadImage(err).Write(w, r)
			return
		}
		imagePath = p
	} else if data := r.FormValue("image"); data != "" {
		raw, err := classify.DecodeDataURL(data)
		if err != nil {
			failure.BadImage(err).Write(w, r)
			return
		}
		p, err := a.media.SaveCameraFrame(raw)
		if err != nil {
			failure.BadImage(err).Write(w, r)
			return
		}
		imagePath = p
	} else {
		failure.ErrNoImage.Write(w, r)
		return
	}

	var gps models.GPS
	if raw := r.FormValue("gps"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &gps); err != nil {
			failure.Validation("gps must be a JSON object with lat and long").Write(w, r)
			return
		}
	} else {
		failure.Validation("gps coordinates are required").Write(w, r)
		return
	}

	locationType := r.FormValue("locationType")
	if locationType == "" {
		failure.Validation("locationType is required").Write(w, r)
		return
	}

	report := models.Report{
		Image:        imagePath,
		GPS:          gps,
		LocationType: locationType,
		UserRole:     r.FormValue("userRole"),
		Address:      r.FormValue("address"),
		PhoneNumber:  r.FormValue("phoneNumber"),
		Timestamp:    time.Now().UTC(),
	}

	saved, err := a.reports.Save(r.Context(), report)
	if err != nil {
		failure.Storage(err).Write(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(saved)
}
