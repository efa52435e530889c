package classify

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"hivewatch/models"
)

// ErrUnavailable marks the classifier as not (yet) usable. Handlers map it
// to 503 so callers can retry later; it is never conflated with a negative
// classification.
var ErrUnavailable = errors.New("classifier unavailable")

// Backend is what the Handle guards; satisfied by *Client.
type Backend interface {
	Load(ctx context.Context) error
	Classify(ctx context.Context, img *Image) ([]models.Prediction, error)
}

// Handle owns the process-lifetime classifier instance. The first load is
// slow, so concurrent callers arriving during it wait on the same in-flight
// load instead of each triggering their own.
type Handle struct {
	backend Backend
	group   singleflight.Group
	loaded  chan struct{} // closed once the backend is warm
}

func NewHandle(backend Backend) *Handle {
	return &Handle{
		backend: backend,
		loaded:  make(chan struct{}),
	}
}

// Loaded reports whether the model finished loading; feeds the health check.
func (h *Handle) Loaded() bool {
	select {
	case <-h.loaded:
		return true
	default:
		return false
	}
}

// Classify warms the backend on first use, then delegates. A failed load is
// retried by the next caller; concurrent callers share one attempt.
func (h *Handle) Classify(ctx context.Context, img *Image) ([]models.Prediction, error) {
	if err := h.ensure(ctx); err != nil {
		return nil, errors.Wrap(ErrUnavailable, err.Error())
	}
	return h.backend.Classify(ctx, img)
}

func (h *Handle) ensure(ctx context.Context) error {
	if h.Loaded() {
		return nil
	}
	_, err, _ := h.group.Do("load", func() (any, error) {
		if h.Loaded() {
			return nil, nil
		}
		if err := h.backend.Load(ctx); err != nil {
			return nil, err
		}
		close(h.loaded)
		return nil, nil
	})
	return err
}
