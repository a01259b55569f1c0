package colorsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paintpick/internal/config"
)

type stubFinder struct {
	queries []string
	urls    []string
	err     error
}

func (f *stubFinder) Find(_ context.Context, query string) ([]string, error) {
	f.queries = append(f.queries, query)
	return f.urls, f.err
}

type stubFetcher struct {
	data map[string][]byte
}

func (f *stubFetcher) Fetch(_ context.Context, imageURL string) ([]byte, error) {
	data, ok := f.data[imageURL]
	if !ok {
		return nil, errors.New("not found")
	}
	return data, nil
}

func discardLogger() *slog.Logger {
	return NewLogger(io.Discard, slog.LevelError)
}

func testSettings() config.ServerSettings {
	return config.DefaultConfig().Server
}

// solidPNG encodes a w×h image filled with c
func solidPNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func post(t *testing.T, s *Server, path string, body any) (int, map[string]any) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestSearchRejectsMissingInputs(t *testing.T) {
	finder := &stubFinder{}
	s := NewWith(testSettings(), discardLogger(), finder, &stubFetcher{})

	code, body := post(t, s, "/search", map[string]any{"brand": "Vallejo", "color_code": "  "})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, errMissingInputs, body["error"])
	assert.Empty(t, finder.queries)
}

func TestSearchExcludesUsedAndCaps(t *testing.T) {
	finder := &stubFinder{urls: []string{
		"https://img.example/1.jpg",
		"https://img.example/thumb",
		"https://img.example/2.png",
		"https://img.example/2.png",
		"https://img.example/3.webp",
		"https://img.example/4.jpeg?w=400",
	}}
	settings := testSettings()
	settings.MaxResults = 2
	s := NewWith(settings, discardLogger(), finder, &stubFetcher{})

	code, body := post(t, s, "/search", map[string]any{
		"brand":      "Vallejo",
		"color_code": "70.951",
		"used_urls":  []string{"https://img.example/1.jpg"},
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"Vallejo 70.951 paint"}, finder.queries)

	images, ok := body["images"].([]any)
	require.True(t, ok)
	require.Len(t, images, 2)
	assert.Equal(t, "https://img.example/2.png", images[0].(map[string]any)["url"])
	assert.Equal(t, "https://img.example/3.webp", images[1].(map[string]any)["url"])
}

func TestSearchReportsFinderFailure(t *testing.T) {
	s := NewWith(testSettings(), discardLogger(), &stubFinder{err: errors.New("blocked")}, &stubFetcher{})

	code, body := post(t, s, "/search", map[string]any{"brand": "Vallejo", "color_code": "70.951"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, errSearchFailed, body["error"])
}

func TestSearchNothingLeftReturnsEmptyList(t *testing.T) {
	finder := &stubFinder{urls: []string{"https://img.example/1.jpg"}}
	s := NewWith(testSettings(), discardLogger(), finder, &stubFetcher{})

	_, body := post(t, s, "/search", map[string]any{
		"brand":      "Vallejo",
		"color_code": "70.951",
		"used_urls":  []string{"https://img.example/1.jpg"},
	})
	images, ok := body["images"].([]any)
	require.True(t, ok, "images is an empty array, not null")
	assert.Empty(t, images)
}

func TestExtractColorOfSolidImage(t *testing.T) {
	fetcher := &stubFetcher{data: map[string][]byte{
		"https://img.example/red.png": solidPNG(t, 30, 30, color.NRGBA{R: 200, G: 40, B: 50, A: 255}),
	}}
	s := NewWith(testSettings(), discardLogger(), &stubFinder{}, fetcher)

	code, body := post(t, s, "/extract-color", map[string]any{"image_url": "https://img.example/red.png"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "#c82832", body["hex"])
	assert.Equal(t, []any{200.0, 40.0, 50.0}, body["rgb"])
}

func TestExtractColorFailures(t *testing.T) {
	fetcher := &stubFetcher{data: map[string][]byte{
		"https://img.example/white.png": solidPNG(t, 30, 30, color.White),
		"https://img.example/text.png":  []byte("not an image"),
	}}
	s := NewWith(testSettings(), discardLogger(), &stubFinder{}, fetcher)

	cases := map[string]string{
		"https://img.example/white.png":   errNoColor,
		"https://img.example/text.png":    errDecode,
		"https://img.example/missing.png": errDownload,
	}
	for imageURL, want := range cases {
		code, body := post(t, s, "/extract-color", map[string]any{"image_url": imageURL})
		assert.Equal(t, http.StatusOK, code, imageURL)
		assert.Equal(t, false, body["success"], imageURL)
		assert.Equal(t, want, body["error"], imageURL)
	}
}

func TestExtractRequiresURL(t *testing.T) {
	s := NewWith(testSettings(), discardLogger(), &stubFinder{}, &stubFetcher{})

	code, body := post(t, s, "/extract-color", map[string]any{"image_url": ""})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, errMissingImage, body["error"])
}

func TestHealthz(t *testing.T) {
	s := NewWith(testSettings(), discardLogger(), &stubFinder{}, &stubFetcher{})

	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/healthz", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
