// Package capture assembles a submission draft on the reporting device:
// exactly one image, the device position, and the form details, gathered
// before a single atomic submit.
package capture

import (
	"context"

	"github.com/pkg/errors"

	"hivewatch/models"
)

// FallbackCoordinate substitutes for a denied or failed geolocation lookup
// so the workflow can proceed instead of blocking the submission.
var FallbackCoordinate = models.GPS{Lat: 12.9716, Long: 77.5946}

// Image source markers sent along with the verify request.
const (
	SourceUpload = "upload"
	SourceCamera = "camera"
)

// LocationProvider yields the device position.
type LocationProvider interface {
	Current(ctx context.Context) (models.GPS, error)
}

// Camera abstracts a live device camera producing encoded frames. Close
// releases the underlying hardware stream and must be safe to call on every
// exit path, including after a failed capture.
type Camera interface {
	Frame(ctx context.Context) ([]byte, error)
	Switch() error // toggle between front and back cameras
	Close() error
}

// Draft accumulates the submission. Never partially sent: Validate gates the
// atomic submit.
type Draft struct {
	ImageData     []byte
	ImageName     string
	Source        string
	GPS           *models.GPS
	Address       string
	LocationType  string
	OtherLocation string
	UserRole      string
	PhoneNumber   string
}

// Builder fills one draft. A retry after rejection starts a fresh builder;
// drafts are not resumed.
type Builder struct {
	location LocationProvider
	draft    Draft
}

func NewBuilder(location LocationProvider) *Builder {
	return &Builder{
		location: location,
		draft:    Draft{UserRole: models.RoleGeneralPublic},
	}
}

// AttachUpload takes a picked file as the draft image. Acquiring an image
// triggers GPS capture immediately, covering users who would otherwise never
// grant location access.
func (b *Builder) AttachUpload(ctx context.Context, name string, data []byte) error {
	if len(data) == 0 {
		return errors.New("empty image file")
	}
	b.draft.ImageData = data
	b.draft.ImageName = name
	b.draft.Source = SourceUpload
	b.acquireGPS(ctx)
	return nil
}

// CaptureFromCamera grabs one frame and releases the camera stream whether
// or not the capture succeeded.
func (b *Builder) CaptureFromCamera(ctx context.Context, cam Camera) (err error) {
	defer func() {
		if cerr := cam.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "release camera")
		}
	}()

	frame, err := cam.Frame(ctx)
	if err != nil {
		return errors.Wrap(err, "capture frame")
	}
	b.draft.ImageData = frame
	b.draft.ImageName = "Captured Image"
	b.draft.Source = SourceCamera
	b.acquireGPS(ctx)
	return nil
}

// acquireGPS is non-fatal: denial or failure substitutes the fallback
// coordinate rather than blocking the submission.
func (b *Builder) acquireGPS(ctx context.Context) {
	gps, err := b.location.Current(ctx)
	if err != nil {
		gps = FallbackCoordinate
	}
	b.draft.GPS = &gps
}

func (b *Builder) SetLocationType(locationType, other string) {
	b.draft.LocationType = locationType
	b.draft.OtherLocation = other
}

func (b *Builder) SetUserRole(role string)     { b.draft.UserRole = role }
func (b *Builder) SetPhoneNumber(phone string) { b.draft.PhoneNumber = phone }
func (b *Builder) SetAddress(address string)   { b.draft.Address = address }

// Draft returns the accumulated draft.
func (b *Builder) Draft() Draft { return b.draft }

// Validate enforces the local preconditions for submit: an image and a
// location type, with "Other" requiring its free-text detail. No network.
func (d *Draft) Validate() error {
	if len(d.ImageData) == 0 {
		return errors.New("an image is required")
	}
	if d.LocationType == "" {
		return errors.New("a location type is required")
	}
	if d.LocationType == models.LocationOther && d.OtherLocation == "" {
		return errors.New("specify the location for type Other")
	}
	return nil
}

// EffectiveLocationType resolves "Other" to the user-entered description.
func (d *Draft) EffectiveLocationType() string {
	if d.LocationType == models.LocationOther && d.OtherLocation != "" {
		return d.OtherLocation
	}
	return d.LocationType
}

// Coordinates never returns nothing: a draft without a fix reports from the
// fallback coordinate.
func (d *Draft) Coordinates() models.GPS {
	if d.GPS != nil {
		return *d.GPS
	}
	return FallbackCoordinate
}
