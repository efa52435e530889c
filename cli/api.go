package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"hivewatch/capture"
	"hivewatch/models"
)

// apiClient talks to the HiveWatch server. It satisfies both workflow
// interfaces: Verify posts the capture for classification, Store submits
// the confirmed report.
type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *apiClient) Verify(ctx context.Context, draft capture.Draft) (models.VerificationResult, error) {
	payload := map[string]string{
		"imageData": "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(draft.ImageData),
		"source":    draft.Source,
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/verify-image", bytes.NewReader(body))
	if err != nil {
		return models.VerificationResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return models.VerificationResult{}, errors.Wrap(err, "verify request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.VerificationResult{}, serverError(resp)
	}
	var out models.VerificationResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.VerificationResult{}, errors.Wrap(err, "decode verify response")
	}
	return out, nil
}

func (c *apiClient) Store(ctx context.Context, draft capture.Draft, _ models.VerificationResult) (models.Report, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	name := draft.ImageName
	if name == "" {
		name = "capture.jpg"
	}
	fw, err := mw.CreateFormFile("image", name)
	if err != nil {
		return models.Report{}, err
	}
	if _, err := fw.Write(draft.ImageData); err != nil {
		return models.Report{}, err
	}

	gps, _ := json.Marshal(draft.Coordinates())
	_ = mw.WriteField("gps", string(gps))
	_ = mw.WriteField("locationType", draft.EffectiveLocationType())
	_ = mw.WriteField("userRole", draft.UserRole)
	_ = mw.WriteField("address", draft.Address)
	_ = mw.WriteField("phoneNumber", draft.PhoneNumber)
	if err := mw.Close(); err != nil {
		return models.Report{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/reports", &buf)
	if err != nil {
		return models.Report{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return models.Report{}, errors.Wrap(err, "store request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return models.Report{}, serverError(resp)
	}
	var out models.Report
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.Report{}, errors.Wrap(err, "decode report response")
	}
	return out, nil
}

// EmergencyContact resolves the responder for the sighting location.
func (c *apiClient) EmergencyContact(ctx context.Context, gps models.GPS) (models.EmergencyContact, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(gps.Lat, 'f', -1, 64))
	q.Set("long", strconv.FormatFloat(gps.Long, 'f', -1, 64))

	var out models.EmergencyContact
	if err := c.getJSON(ctx, "/api/emergency-contacts?"+q.Encode(), &out); err != nil {
		return models.EmergencyContact{}, err
	}
	return out, nil
}

// Guidance fetches the safety instructions for the sighting context.
func (c *apiClient) Guidance(ctx context.Context, locationType, userRole string, gps models.GPS) (guidelines, error) {
	q := url.Values{}
	q.Set("locationType", locationType)
	q.Set("userRole", userRole)
	q.Set("lat", strconv.FormatFloat(gps.Lat, 'f', -1, 64))
	q.Set("long", strconv.FormatFloat(gps.Long, 'f', -1, 64))

	var out guidelines
	if err := c.getJSON(ctx, "/api/guidance?"+q.Encode(), &out); err != nil {
		return guidelines{}, err
	}
	return out, nil
}

type guidelines struct {
	Dos      []string `json:"dos"`
	Donts    []string `json:"donts"`
	Advisory string   `json:"advisory,omitempty"`
}

func (c *apiClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return serverError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// serverError surfaces the server's public message when there is one.
func serverError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var msg struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &msg) == nil && msg.Message != "" {
		return fmt.Errorf("server: %s (%s)", msg.Message, resp.Status)
	}
	return fmt.Errorf("server: %s", resp.Status)
}
