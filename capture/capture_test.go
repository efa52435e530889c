package capture

import (
	"context"
	"errors"
	"testing"

	"hivewatch/models"
)

type stubLocation struct {
	gps models.GPS
	err error
}

func (s stubLocation) Current(ctx context.Context) (models.GPS, error) { return s.gps, s.err }

type stubCamera struct {
	frame    []byte
	frameErr error
	closed   bool
}

func (c *stubCamera) Frame(ctx context.Context) ([]byte, error) { return c.frame, c.frameErr }
func (c *stubCamera) Switch() error                             { return nil }
func (c *stubCamera) Close() error                              { c.closed = true; return nil }

func TestAttachUploadTriggersGPS(t *testing.T) {
	want := models.GPS{Lat: 13.0827, Long: 80.2707}
	b := NewBuilder(stubLocation{gps: want})

	if err := b.AttachUpload(context.Background(), "colony.jpg", []byte{1, 2}); err != nil {
		t.Fatalf("AttachUpload: %v", err)
	}
	d := b.Draft()
	if d.Source != SourceUpload || d.ImageName != "colony.jpg" {
		t.Errorf("draft = %+v", d)
	}
	if d.GPS == nil || *d.GPS != want {
		t.Errorf("GPS = %v, want %v (auto-captured on image acquisition)", d.GPS, want)
	}
}

func TestGPSDenialFallsBack(t *testing.T) {
	b := NewBuilder(stubLocation{err: errors.New("permission denied")})

	if err := b.AttachUpload(context.Background(), "x.jpg", []byte{1}); err != nil {
		t.Fatalf("AttachUpload: %v", err)
	}
	d := b.Draft()
	if d.GPS == nil || *d.GPS != FallbackCoordinate {
		t.Errorf("GPS = %v, want fallback %v", d.GPS, FallbackCoordinate)
	}
	if got := d.Coordinates(); got != FallbackCoordinate {
		t.Errorf("Coordinates() = %v, want fallback", got)
	}
}

func TestCameraReleasedOnEveryExit(t *testing.T) {
	b := NewBuilder(stubLocation{gps: FallbackCoordinate})

	ok := &stubCamera{frame: []byte{0xff}}
	if err := b.CaptureFromCamera(context.Background(), ok); err != nil {
		t.Fatalf("CaptureFromCamera: %v", err)
	}
	if !ok.closed {
		t.Error("camera not released after successful capture")
	}
	if b.Draft().Source != SourceCamera {
		t.Errorf("Source = %q, want %q", b.Draft().Source, SourceCamera)
	}

	failing := &stubCamera{frameErr: errors.New("stream gone")}
	if err := b.CaptureFromCamera(context.Background(), failing); err == nil {
		t.Error("expected capture error")
	}
	if !failing.closed {
		t.Error("camera not released after failed capture")
	}
}

func TestDraftValidate(t *testing.T) {
	tests := []struct {
		name    string
		draft   Draft
		wantErr bool
	}{
		{"complete", Draft{ImageData: []byte{1}, LocationType: models.LocationFarm}, false},
		{"missing image", Draft{LocationType: models.LocationFarm}, true},
		{"missing location type", Draft{ImageData: []byte{1}}, true},
		{"other without detail", Draft{ImageData: []byte{1}, LocationType: models.LocationOther}, true},
		{"other with detail", Draft{ImageData: []byte{1}, LocationType: models.LocationOther, OtherLocation: "Water tank"}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.draft.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr=%v", err, tc.wantErr)
			}
		})
	}
}

func TestEffectiveLocationType(t *testing.T) {
	d := Draft{LocationType: models.LocationOther, OtherLocation: "Water tank"}
	if got := d.EffectiveLocationType(); got != "Water tank" {
		t.Errorf("got %q", got)
	}
	d = Draft{LocationType: models.LocationBridges}
	if got := d.EffectiveLocationType(); got != models.LocationBridges {
		t.Errorf("got %q", got)
	}
}
