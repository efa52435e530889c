package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hivewatch/failure"
	"hivewatch/geocode"
	"hivewatch/models"
	"hivewatch/store"
)

// handleLookupContact resolves the emergency contact shown after a verified
// sighting. Takes either a city or raw coordinates; always answers 200 with
// a contact, falling back down the lookup chain on misses.
func (a *App) handleLookupContact(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if city == "" {
		lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
		long, errLong := strconv.ParseFloat(r.URL.Query().Get("long"), 64)
		if errLat == nil && errLong == nil {
			// Best effort: a failed geocode just skips the city match.
			if addr, err := a.geocoder.Reverse(r.Context(), lat, long); err == nil {
				city = geocode.City(addr)
			}
		}
	}

	contact := store.LookupContact(r.Context(), a.contacts, city)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(contact)
}

// handleListContacts returns the full directory for the admin console.
func (a *App) handleListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := a.contacts.ListAll(r.Context())
	if err != nil {
		failure.Internal(err).Write(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(contacts)
}

func contactFromReq(req contactReq) (models.EmergencyContact, *failure.RequestFailure) {
	if req.Region == "" || req.ContactName == "" || req.PhoneNumber == "" || req.Designation == "" {
		return models.EmergencyContact{},
			failure.Validation("region, contactName, phoneNumber, designation are required")
	}
	return models.EmergencyContact{
		Region:      req.Region,
		ContactName: req.ContactName,
		PhoneNumber: req.PhoneNumber,
		Designation: req.Designation,
		City:        req.City,
		State:       req.State,
	}, nil
}

// handleCreateContact adds a directory entry (admin only).
func (a *App) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	var req contactReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	c, rf := contactFromReq(req)
	if rf != nil {
		rf.Write(w, r)
		return
	}
	c.CreatedAt = time.Now()

	saved, err := a.contacts.Create(r.Context(), c)
	if err != nil {
		failure.Internal(err).Write(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(saved)
}

// handleUpdateContact replaces a directory entry (admin only).
func (a *App) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		failure.Validation("invalid contact id").Write(w, r)
		return
	}
	var req contactReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	c, rf := contactFromReq(req)
	if rf != nil {
		rf.Write(w, r)
		return
	}

	updated, err := a.contacts.Update(r.Context(), id, c)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			failure.ErrContactNotFound.Write(w, r)
			return
		}
		failure.Internal(err).Write(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(updated)
}

// handleDeleteContact removes a directory entry (admin only).
func (a *App) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		failure.Validation("invalid contact id").Write(w, r)
		return
	}
	if err := a.contacts.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			failure.ErrContactNotFound.Write(w, r)
			return
		}
		failure.Internal(err).Write(w, r)
		return
	}
	slog.Info("contact deleted",
		slog.String("contactId", id.Hex()),
		slog.String("adminId", mustAdminID(r).Hex()),
	)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(messageResp{Message: "Contact deleted successfully"})
}
