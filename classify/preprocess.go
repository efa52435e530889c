package classify

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/jpeg"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"

	// Decoders for the formats browsers and phones produce.
	_ "image/gif"
	_ "image/png"
)

// InputSize is the square resolution the classifier expects.
const InputSize = 224

// Image is one decoded frame in the classifier's input shape: InputSize
// square, alpha stripped, 3 bytes per pixel row-major.
type Image struct {
	Pixels []byte
	Width  int
	Height int
}

// DecodeDataURL strips a "data:image/...;base64," prefix and decodes the
// payload. Bare base64 without the prefix is accepted too.
func DecodeDataURL(dataURL string) ([]byte, error) {
	payload := dataURL
	if strings.HasPrefix(dataURL, "data:") {
		idx := strings.Index(dataURL, "base64,")
		if idx < 0 {
			return nil, errors.New("data url is not base64 encoded")
		}
		payload = dataURL[idx+len("base64,"):]
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, errors.Wrap(err, "decode base64 image")
	}
	return raw, nil
}

// Preprocess decodes raw image bytes and resizes them to the classifier's
// input shape, dropping the alpha channel.
func Preprocess(raw []byte) (*Image, error) {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Wrap(err, "decode image")
	}

	dst := image.NewRGBA(image.Rect(0, 0, InputSize, InputSize))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	pixels := make([]byte, 0, InputSize*InputSize*3)
	for i := 0; i < len(dst.Pix); i += 4 {
		pixels = append(pixels, dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2])
	}
	return &Image{Pixels: pixels, Width: InputSize, Height: InputSize}, nil
}

// EncodeJPEG re-encodes the frame for transport to the inference service.
// The buffer is built per call and released after the request; nothing is
// cached between classifications.
func (im *Image) EncodeJPEG() ([]byte, error) {
	rgba := image.NewRGBA(image.Rect(0, 0, im.Width, im.Height))
	for p, q := 0, 0; p < len(im.Pixels); p, q = p+3, q+4 {
		rgba.Pix[q] = im.Pixels[p]
		rgba.Pix[q+1] = im.Pixels[p+1]
		rgba.Pix[q+2] = im.Pixels[p+2]
		rgba.Pix[q+3] = 0xff
	}
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, rgba, &jpeg.Options{Quality: 90}); err != nil {
		return nil, errors.Wrap(err, "encode jpeg")
	}
	return buf.Bytes(), nil
}
