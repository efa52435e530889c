package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/jpeg"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"hivewatch/classify"
	"hivewatch/decide"
	"hivewatch/media"
	"hivewatch/models"
	"hivewatch/store"
)

type stubBackend struct {
	loadErr error
	preds   []models.Prediction
}

func (s *stubBackend) Load(ctx context.Context) error { return s.loadErr }

func (s *stubBackend) Classify(ctx context.Context, img *classify.Image) ([]models.Prediction, error) {
	return s.preds, nil
}

type stubContacts struct {
	byCity map[string]models.EmergencyContact
	any    *models.EmergencyContact
}

func (s *stubContacts) FindByCity(ctx context.Context, city string) (models.EmergencyContact, error) {
	if c, ok := s.byCity[city]; ok {
		return c, nil
	}
	return models.EmergencyContact{}, store.ErrNotFound
}

func (s *stubContacts) FindAny(ctx context.Context) (models.EmergencyContact, error) {
	if s.any != nil {
		return *s.any, nil
	}
	return models.EmergencyContact{}, store.ErrNotFound
}

func (s *stubContacts) ListAll(ctx context.Context) ([]models.EmergencyContact, error) {
	return nil, nil
}

func (s *stubContacts) Create(ctx context.Context, c models.EmergencyContact) (models.EmergencyContact, error) {
	return c, nil
}

func (s *stubContacts) Update(ctx context.Context, id primitive.ObjectID, c models.EmergencyContact) (models.EmergencyContact, error) {
	return models.EmergencyContact{}, store.ErrNotFound
}

func (s *stubContacts) Delete(ctx context.Context, id primitive.ObjectID) error {
	return store.ErrNotFound
}

func testApp(t *testing.T, backend classify.Backend, contacts store.ContactStore) *App {
	t.Helper()
	dir := t.TempDir()
	reports, err := store.NewFileReports(filepath.Join(dir, "reports.json"))
	if err != nil {
		t.Fatal(err)
	}
	if contacts == nil {
		contacts = &stubContacts{}
	}
	cfg := mustConfig()
	return &App{
		cfg:        cfg,
		reports:    reports,
		contacts:   contacts,
		media:      media.NewStore(filepath.Join(dir, "uploads")),
		classifier: classify.NewHandle(backend),
		engine:     decide.New(cfg.Verify.Policy),
	}
}

func tinyJPEGDataURL(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatal(err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestHealth(t *testing.T) {
	app := testApp(t, &stubBackend{}, nil)
	srv := httptest.NewServer(app.routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var h healthResp
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		t.Fatal(err)
	}
	if h.Status != "UP" {
		t.Errorf("status = %q, want UP", h.Status)
	}
	if h.ModelLoaded {
		t.Error("model should not be loaded before the first classification")
	}
}

func TestVerifyImageAccepts(t *testing.T) {
	backend := &stubBackend{preds: []models.Prediction{
		{Label: "honeycomb", Probability: 0.87},
		{Label: "chainlink fence", Probability: 0.05},
	}}
	app := testApp(t, backend, nil)
	srv := httptest.NewServer(app.routes())
	defer srv.Close()

	body, _ := json.Marshal(verifyReq{ImageData: tinyJPEGDataURL(t), Source: "upload"})
	resp, err := http.Post(srv.URL+"/api/verify-image", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var out models.VerificationResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if !out.IsHoneybee {
		t.Error("honeycomb top label should verify")
	}
	if out.Confidence != 95 {
		t.Errorf("confidence = %d, want the unambiguous floor 95", out.Confidence)
	}
}

func TestVerifyImageMissingData(t *testing.T) {
	app := testApp(t, &stubBackend{}, nil)
	srv := httptest.NewServer(app.routes())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/verify-image", "application/json",
		bytes.NewReader([]byte(`{}`)))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestVerifyImageClassifierDown(t *testing.T) {
	backend := &stubBackend{loadErr: context.DeadlineExceeded}
	app := testApp(t, backend, nil)
	srv := httptest.NewServer(app.routes())
	defer srv.Close()

	body, _ := json.Marshal(verifyReq{ImageData: tinyJPEGDataURL(t)})
	resp, err := http.Post(srv.URL+"/api/verify-image", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", resp.StatusCode)
	}
}

func TestCreateAndListReports(t *testing.T) {
	app := testApp(t, &stubBackend{}, nil)
	srv := httptest.NewServer(app.routes())
	defer srv.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	fw, _ := mw.CreateFormFile("image", "hive.jpg")
	if err := jpeg.Encode(fw, img, nil); err != nil {
		t.Fatal(err)
	}
	mw.WriteField("gps", `{"lat":12.9716,"long":77.5946}`)
	mw.WriteField("locationType", models.LocationBuildings)
	mw.WriteField("userRole", models.RoleGeneralPublic)
	mw.Close()

	resp, err := http.Post(srv.URL+"/api/reports", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	var created models.Report
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if created.Image == "" {
		t.Error("stored report should carry an image path")
	}
	if created.GPS.Lat != 12.9716 {
		t.Errorf("lat = %v, want 12.9716", created.GPS.Lat)
	}

	listResp, err := http.Get(srv.URL + "/api/reports")
	if err != nil {
		t.Fatal(err)
	}
	defer listResp.Body.Close()
	var reports []models.Report
	if err := json.NewDecoder(listResp.Body).Decode(&reports); err != nil {
		t.Fatal(err)
	}
	if len(reports) != 1 {
		t.Fatalf("len(reports) = %d, want 1", len(reports))
	}
}

func TestCreateReportWithoutImage(t *testing.T) {
	app := testApp(t, &stubBackend{}, nil)
	srv := httptest.NewServer(app.routes())
	defer srv.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("gps", `{"lat":1,"long":2}`)
	mw.WriteField("locationType", models.LocationFarm)
	mw.Close()

	resp, err := http.Post(srv.URL+"/api/reports", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestLookupContactFallsBackToDefault(t *testing.T) {
	app := testApp(t, &stubBackend{}, &stubContacts{})
	srv := httptest.NewServer(app.routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/emergency-contacts?city=Nowhere")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var c models.EmergencyContact
	if err := json.NewDecoder(resp.Body).Decode(&c); err != nil {
		t.Fatal(err)
	}
	if c.ContactName != store.DefaultContact().ContactName {
		t.Errorf("contact = %q, want the default helpline", c.ContactName)
	}
}

func TestLookupContactByCity(t *testing.T) {
	contacts := &stubContacts{byCity: map[string]models.EmergencyContact{
		"Bengaluru": {Region: "Karnataka", ContactName: "BBMP Forest Cell", PhoneNumber: "+91 80000 00000", Designation: "Forest Officer"},
	}}
	app := testApp(t, &stubBackend{}, contacts)
	srv := httptest.NewServer(app.routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/emergency-contacts?city=Bengaluru")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var c models.EmergencyContact
	if err := json.NewDecoder(resp.Body).Decode(&c); err != nil {
		t.Fatal(err)
	}
	if c.ContactName != "BBMP Forest Cell" {
		t.Errorf("contact = %q, want the city match", c.ContactName)
	}
}

func TestGuidanceEndpoint(t *testing.T) {
	app := testApp(t, &stubBackend{}, nil)
	srv := httptest.NewServer(app.routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/guidance?locationType=Farm&userRole=Farmer&lat=12.9&long=77.5")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var g struct {
		Dos      []string `json:"dos"`
		Donts    []string `json:"donts"`
		Advisory string   `json:"advisory"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&g); err != nil {
		t.Fatal(err)
	}
	if len(g.Dos) == 0 || len(g.Donts) == 0 {
		t.Error("farm guidance should carry dos and donts")
	}
	if g.Advisory == "" {
		t.Error("farm guidance should carry the pollination advisory")
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	app := testApp(t, &stubBackend{}, nil)
	srv := httptest.NewServer(app.routes())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/emergency-contacts", "application/json",
		bytes.NewReader([]byte(`{}`)))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}
