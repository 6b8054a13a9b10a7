package storefront

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eringen/storefront/content"
	"github.com/eringen/storefront/inquiry"
	"github.com/eringen/storefront/kv"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []inquiry.Inquiry
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, in inquiry.Inquiry) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, in)
	return n.err
}

// brokenBackend accepts reads but fails every write.
type brokenBackend struct {
	*kv.Memory
}

func (brokenBackend) Put(context.Context, string, []byte) error {
	return errors.New("disk full")
}

type testClient struct {
	t      *testing.T
	app    *App
	server *httptest.Server
	http   *http.Client
}

func newTestApp(t *testing.T, cfg Config, opts ...Option) *testClient {
	t.Helper()
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = "test-secret-0123456789abcdef"
	}
	cfg.StaticDir = t.TempDir()
	cfg.MetricsEnabled = true

	inquiries, err := inquiry.NewStore(filepath.Join(t.TempDir(), "inquiries.db"))
	require.NoError(t, err)
	t.Cleanup(func() { inquiries.Close() })

	base := []Option{
		WithBackend(kv.NewMemory()),
		WithInquiryStore(inquiries),
		WithLogger(zap.NewNop()),
	}
	app, err := New(cfg, append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })

	server := httptest.NewServer(app.Echo)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testClient{t: t, app: app, server: server, http: &http.Client{Jar: jar}}
}

func (tc *testClient) get(path string) (int, string) {
	tc.t.Helper()
	resp, err := tc.http.Get(tc.server.URL + path)
	require.NoError(tc.t, err)
	return readBody(tc.t, resp)
}

// csrf fetches a page so the jar holds a CSRF cookie and returns the token.
func (tc *testClient) csrf() string {
	tc.t.Helper()
	tc.get("/contact/")
	u, err := url.Parse(tc.server.URL)
	require.NoError(tc.t, err)
	for _, c := range tc.http.Jar.Cookies(u) {
		if c.Name == "_csrf" {
			return c.Value
		}
	}
	tc.t.Fatal("no _csrf cookie")
	return ""
}

func (tc *testClient) post(path string, form url.Values) (int, string) {
	tc.t.Helper()
	form.Set("_csrf", tc.csrf())
	resp, err := tc.http.PostForm(tc.server.URL+path, form)
	require.NoError(tc.t, err)
	return readBody(tc.t, resp)
}

func readBody(t *testing.T, resp *http.Response) (int, string) {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestNewRequiresSessionSecret(t *testing.T) {
	_, err := New(Config{}, WithBackend(kv.NewMemory()), WithLogger(zap.NewNop()))
	assert.Error(t, err)
}

func TestPublicPagesRenderStoreState(t *testing.T) {
	tc := newTestApp(t, Config{})

	for _, path := range []string{"/", "/services/", "/contact/"} {
		status, body := tc.get(path)
		assert.Equal(t, http.StatusOK, status, path)
		assert.Contains(t, body, "<title>Shine Electronic &amp; Computer | Premium Electronics &amp; Security</title>", path)
	}

	_, body := tc.get("/services/")
	assert.Equal(t, 6, strings.Count(body, `class="service-card"`))
	assert.Contains(t, body, "Computer Repair &amp; Sales")
}

func TestAdminConfigUpdateChangesTitle(t *testing.T) {
	tc := newTestApp(t, Config{})
	cfg := tc.app.Content.Config()

	status, body := tc.post("/admin/config/", url.Values{
		"shopName": {"Acme Repair"},
		"tagline":  {cfg.Tagline},
		"phone":    {cfg.Phone},
	})

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "<title>Acme Repair | Premium Electronics &amp; Security</title>")
	assert.Contains(t, body, `class="flash flash-ok"`)
	assert.Equal(t, "Acme Repair", tc.app.Content.Config().ShopName)
	assert.Equal(t, cfg.Email, tc.app.Content.Config().Email)

	_, home := tc.get("/")
	assert.Contains(t, home, "Acme Repair | Premium Electronics")
	assert.NotContains(t, home, "flash-ok", "flash is shown once")
}

func TestAdminConfigSingleField(t *testing.T) {
	tc := newTestApp(t, Config{})

	tc.post("/admin/config/", url.Values{"field": {"textPhone"}, "value": {"(555) 010-0000"}})
	assert.Equal(t, "(555) 010-0000", tc.app.Content.Config().TextPhone)

	status, _ := tc.post("/admin/config/", url.Values{"field": {"bogus"}, "value": {"x"}})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, content.DefaultConfig().ShopName, tc.app.Content.Config().ShopName)
}

func TestAdminConfigTrimsAndSkipsFlashWhenUnchanged(t *testing.T) {
	tc := newTestApp(t, Config{})

	status, body := tc.post("/admin/config/", url.Values{"field": {"textPhone"}, "value": {"  (555) 010-0000  "}})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "(555) 010-0000", tc.app.Content.Config().TextPhone)
	assert.Contains(t, body, "flash-ok")

	status, body = tc.post("/admin/config/", url.Values{"field": {"bogus"}, "value": {"x"}})
	assert.Equal(t, http.StatusOK, status)
	assert.NotContains(t, body, "flash-ok")

	status, body = tc.post("/admin/config/", url.Values{"textPhone": {"(555) 010-0000 "}})
	assert.Equal(t, http.StatusOK, status)
	assert.NotContains(t, body, "flash-ok")
}

func TestAdminServiceLifecycle(t *testing.T) {
	tc := newTestApp(t, Config{})

	status, _ := tc.post("/admin/services/", url.Values{"title": {"Drone Repair"}})
	require.Equal(t, http.StatusOK, status)
	services := tc.app.Content.Services()
	require.Len(t, services, 7)
	added := services[6]
	assert.Equal(t, "Drone Repair", added.Title)
	assert.Equal(t, content.NewServiceIcon, added.Icon)

	status, body := tc.get("/admin/services/" + added.ID + "/")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `value="Drone Repair"`)

	tc.post("/admin/services/"+added.ID+"/", url.Values{
		"title":       {"Drones & Gimbals"},
		"description": {"Props, motors and gimbals."},
		"icon":        {"camera"},
		"price":       {"From $49"},
	})
	got, ok := tc.app.Content.Service(added.ID)
	require.True(t, ok)
	assert.Equal(t, content.Service{
		ID:          added.ID,
		Title:       "Drones & Gimbals",
		Description: "Props, motors and gimbals.",
		Icon:        "camera",
		Price:       "From $49",
	}, got)

	_, body = tc.post("/admin/services/"+added.ID+"/delete/", url.Values{})
	assert.Contains(t, body, "Service deleted")
	assert.Equal(t, content.DefaultServices(), tc.app.Content.Services())
}

func TestAdminServiceDeleteMethod(t *testing.T) {
	tc := newTestApp(t, Config{})
	token := tc.csrf()

	req, err := http.NewRequest(http.MethodDelete, tc.server.URL+"/admin/services/2/", nil)
	require.NoError(t, err)
	req.Header.Set("X-CSRF-Token", token)
	resp, err := tc.http.Do(req)
	require.NoError(t, err)
	status, _ := readBody(t, resp)

	assert.Equal(t, http.StatusNoContent, status)
	_, ok := tc.app.Content.Service("2")
	assert.False(t, ok)
}

func TestUnknownServiceIsNotFound(t *testing.T) {
	tc := newTestApp(t, Config{})

	status, body := tc.get("/admin/services/nope/")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "Page not found")

	status, _ = tc.post("/admin/services/nope/", url.Values{"title": {"x"}})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestPersistFailureShowsWarning(t *testing.T) {
	tc := newTestApp(t, Config{}, WithBackend(brokenBackend{kv.NewMemory()}))

	status, body := tc.post("/admin/services/", url.Values{"title": {"Unsaved"}})

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `class="flash flash-warn"`)
	assert.Contains(t, body, "could not be saved")
	assert.Len(t, tc.app.Content.Services(), 7, "edit stays visible in memory")
}

func TestCSRFTokenRequired(t *testing.T) {
	tc := newTestApp(t, Config{})

	resp, err := tc.http.PostForm(tc.server.URL+"/admin/services/", url.Values{"title": {"x"}})
	require.NoError(t, err)
	status, _ := readBody(t, resp)

	assert.Equal(t, http.StatusForbidden, status)
	assert.Len(t, tc.app.Content.Services(), 6)
}

func TestContactSubmitStoresAndNotifies(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	tc := newTestApp(t, Config{}, WithNotifier(notifier))

	status, body := tc.post("/contact/", url.Values{
		"name":         {"Jane Doe"},
		"email":        {"jane@example.com"},
		"phone":        {"212-555-0100"},
		"service_type": {"Network Inspection"},
		"details":      {"Office wifi drops"},
	})

	assert.Equal(t, http.StatusOK, status, "notification failure does not fail the submission")
	assert.Contains(t, body, "Inquiry Received!")

	list, err := tc.app.Inquiries.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Jane Doe", list[0].Name)
	assert.Equal(t, "Network Inspection", list[0].ServiceType)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, list[0].ID, notifier.sent[0].ID)

	_, admin := tc.get("/admin/?tab=inquiries")
	assert.Contains(t, admin, "Office wifi drops")

	tc.post("/admin/inquiries/"+list[0].ID+"/delete/", url.Values{})
	list, err = tc.app.Inquiries.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestContactSubmitValidation(t *testing.T) {
	tc := newTestApp(t, Config{})

	status, body := tc.post("/contact/", url.Values{
		"email": {"jane@example.com"},
		"phone": {"212-555-0100"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body, "name is required")
	assert.Contains(t, body, `value="jane@example.com"`)
}

func TestContactSubmitRateLimited(t *testing.T) {
	tc := newTestApp(t, Config{ContactLimit: 2})
	form := func() url.Values {
		return url.Values{
			"name":  {"Jane"},
			"email": {"jane@example.com"},
			"phone": {"212-555-0100"},
		}
	}

	s1, _ := tc.post("/contact/", form())
	s2, _ := tc.post("/contact/", form())
	s3, body := tc.post("/contact/", form())

	assert.Equal(t, http.StatusOK, s1)
	assert.Equal(t, http.StatusOK, s2)
	assert.Equal(t, http.StatusTooManyRequests, s3)
	assert.Contains(t, body, "Too many inquiries")
}

func TestServiceImageUpload(t *testing.T) {
	tc := newTestApp(t, Config{})

	src := image.NewRGBA(image.Rect(0, 0, 1600, 400))
	for x := 0; x < 1600; x++ {
		src.Set(x, 200, color.RGBA{R: 200, A: 255})
	}
	var pngData bytes.Buffer
	require.NoError(t, png.Encode(&pngData, src))

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("_csrf", tc.csrf()))
	part, err := w.CreateFormFile("image", "photo.png")
	require.NoError(t, err)
	_, err = part.Write(pngData.Bytes())
	require.NoError(t, err)
	require.NoError(t, w.Close())

	resp, err := tc.http.Post(tc.server.URL+"/admin/services/1/image/", w.FormDataContentType(), &body)
	require.NoError(t, err)
	status, page := readBody(t, resp)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, page, "Image uploaded")

	svc, ok := tc.app.Content.Service("1")
	require.True(t, ok)
	assert.Equal(t, "/public/uploads/computer-repair-sales.jpg", svc.ImageURL)

	f, err := os.Open(filepath.Join(tc.app.Config.StaticDir, "uploads", "computer-repair-sales.jpg"))
	require.NoError(t, err)
	defer f.Close()
	cfg, err := jpeg.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 200, cfg.Height)

	status, _ = tc.get(svc.ImageURL)
	assert.Equal(t, http.StatusOK, status)
}

func TestSitemapRobotsAndAssets(t *testing.T) {
	tc := newTestApp(t, Config{SiteURL: "https://shine.example"})

	status, body := tc.get("/sitemap.xml")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "<loc>https://shine.example/services/</loc>")
	assert.Contains(t, body, "<loc>https://shine.example/contact/</loc>")

	_, body = tc.get("/robots.txt")
	assert.Contains(t, body, "Disallow: /admin/")
	assert.Contains(t, body, "Sitemap: https://shine.example/sitemap.xml")

	status, body = tc.get("/public/site.css")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, ".service-card")

	status, body = tc.get("/favicon.svg")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "<svg")
}

func TestMetricsEndpoint(t *testing.T) {
	tc := newTestApp(t, Config{})
	tc.post("/admin/services/", url.Values{})

	status, body := tc.get("/metrics")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `storefront_content_mutations_total{op="add_service",result="ok"}`)
}

func TestMetricsScrapeWithGzipAccepted(t *testing.T) {
	tc := newTestApp(t, Config{})
	tc.post("/admin/services/", url.Values{})

	// Setting the header by hand turns off the transport's transparent
	// decompression, so the body is exactly what a scraper receives.
	req, err := http.NewRequest(http.MethodGet, tc.server.URL+"/metrics", nil)
	require.NoError(t, err)
	req.Header.Set("Accept-Encoding", "gzip")
	resp, err := tc.http.Do(req)
	require.NoError(t, err)
	encoding := resp.Header.Get("Content-Encoding")
	status, body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, encoding)
	assert.True(t, strings.HasPrefix(body, "#"), "metrics body is plain text exposition")
	assert.Contains(t, body, `storefront_content_mutations_total{op="add_service",result="ok"}`)
}
