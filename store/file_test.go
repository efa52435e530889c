package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"hivewatch/models"
)

func newFileStore(t *testing.T) *FileReports {
	t.Helper()
	s, err := NewFileReports(filepath.Join(t.TempDir(), "reports.json"))
	if err != nil {
		t.Fatalf("NewFileReports: %v", err)
	}
	return s
}

func TestFileReportsNewestFirst(t *testing.T) {
	s := newFileStore(t)
	ctx := context.Background()

	r1, err := s.Save(ctx, models.Report{LocationType: models.LocationFarm, UserRole: models.RoleFarmer})
	if err != nil {
		t.Fatalf("save r1: %v", err)
	}
	r2, err := s.Save(ctx, models.Report{LocationType: models.LocationBridges, UserRole: models.RoleStudent})
	if err != nil {
		t.Fatalf("save r2: %v", err)
	}

	got, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != r2.ID || got[1].ID != r1.ID {
		t.Errorf("order = [%s, %s], want [%s, %s] (newest first)",
			got[0].ID.Hex(), got[1].ID.Hex(), r2.ID.Hex(), r1.ID.Hex())
	}
}

func TestFileReportsAssignsIDAndTimestamp(t *testing.T) {
	s := newFileStore(t)

	saved, err := s.Save(context.Background(), models.Report{LocationType: models.LocationOther})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.ID.IsZero() {
		t.Error("saved report has zero id")
	}
	if saved.Timestamp.IsZero() {
		t.Error("saved report has zero timestamp")
	}
	if time.Since(saved.Timestamp) > time.Minute {
		t.Errorf("timestamp %v not recent", saved.Timestamp)
	}
}

func TestFileReportsSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reports.json")
	ctx := context.Background()

	s1, err := NewFileReports(path)
	if err != nil {
		t.Fatalf("NewFileReports: %v", err)
	}
	saved, err := s1.Save(ctx, models.Report{LocationType: models.LocationFarm, Address: "GKVK Campus"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	s2, err := NewFileReports(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := s2.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(got) != 1 || got[0].ID != saved.ID || got[0].Address != "GKVK Campus" {
		t.Errorf("reopened store returned %+v, want the saved report", got)
	}
}

func TestFileReportsEmptyList(t *testing.T) {
	s := newFileStore(t)
	got, err := s.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("fresh store returned %d reports, want 0", len(got))
	}
}
