package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"dslsplit/config"
	"dslsplit/internal/adapter/ngram"
	"dslsplit/internal/domain"
	"dslsplit/internal/usecase"
)

var testLexicon = []string{
	"opera", "koncert", "bade", "land", "skrivebord", "lampe",
	"hus", "vogn", "sne", "bold", "kamp", "hest", "vild",
}

var testCompounds = []string{
	"bade+land", "bade+kar", "vild+and", "sne+bold", "sne+bold+kamp",
	"skrivebord+s+lampe", "hus+e+vogn", "opera+koncert",
}

func newTestServer(t *testing.T, mutate func(*config.Config)) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}

	affix, err := ngram.TrainAffix(testLexicon, "da", "careful", nil)
	if err != nil {
		t.Fatal(err)
	}
	penta, err := ngram.TrainPentagram(testCompounds, "nudansk", nil)
	if err != nil {
		t.Fatal(err)
	}
	tables := usecase.NewTables(affix, []string{"da"}, domain.NewLemmaSet(testLexicon),
		map[string]*domain.PentagramTable{"nudansk": penta}, usecase.BruteOptions(cfg.Brute))

	split := usecase.NewSplitUseCase(cfg, tables, nil)
	return New(split, cfg.Service, prometheus.NewRegistry())
}

func do(t *testing.T, s *Server, method, target, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeSplit(t *testing.T, rec *httptest.ResponseRecorder) domain.SplitResponse {
	t.Helper()
	var resp domain.SplitResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "200" {
		t.Errorf("expected 200 body \"200\", got %d %q", rec.Code, rec.Body.String())
	}
	if rec.Header().Get(requestIDHeader) == "" {
		t.Error("expected a request id header")
	}
}

func TestSplitWord_Careful(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodGet, "/split/operakoncert?method=careful", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeSplit(t, rec)
	if resp.Word != "operakoncert" || resp.Method != domain.MethodCareful {
		t.Errorf("unexpected response %+v", resp)
	}
	if len(resp.Splits) == 0 || !reflect.DeepEqual(resp.Splits[0].Subtokens, []string{"opera", "koncert"}) {
		t.Errorf("expected opera+koncert, got %v", resp.Splits)
	}
	if resp.Description == "" {
		t.Error("expected a description")
	}
}

func TestSplitWord_JSONShape(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodGet, "/split/badeand?method=careful", "", nil)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"word", "splits", "method", "description"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("expected key %q in %s", key, rec.Body.String())
		}
	}
	if string(raw["splits"]) != "[]" {
		t.Errorf("expected empty splits array, got %s", raw["splits"])
	}
}

func TestSplitWord_MixedFallback(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodGet, "/split/badeand", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeSplit(t, rec)
	if resp.Method != domain.MethodBrute || len(resp.Splits) == 0 {
		t.Errorf("expected brute fallback with splits, got %+v", resp)
	}
}

func TestSplitWord_Unicode(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodGet, "/split/"+url.PathEscape("tv-ålefiskeri"), "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeSplit(t, rec)
	if len(resp.Splits) != 1 || resp.Splits[0].Subtokens[1] != "Ålefiskeri" {
		t.Errorf("expected hyphen split, got %v", resp.Splits)
	}
}

func TestSplitWord_BadRequest(t *testing.T) {
	s := newTestServer(t, nil)
	for _, target := range []string{
		"/split/hus?method=quick",
		"/split/hus?method=brute&variant=oldnordisk",
		"/split/hus?lang=sv",
	} {
		rec := do(t, s, http.MethodGet, target, "", nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rec.Code)
		}
		var e errorResponse
		if err := json.NewDecoder(rec.Body).Decode(&e); err != nil || e.Error == "" {
			t.Errorf("%s: expected JSON error body, got %v", target, err)
		}
	}
}

func TestSplitText(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodPost, "/split", `{"text":"operakoncert og badeand","method":"mixed"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp splitTextResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 3 || resp.Results[2].Word != "badeand" {
		t.Errorf("unexpected results %+v", resp.Results)
	}

	for _, body := range []string{`{}`, `not json`, `{"text":"hus","method":"fast"}`} {
		if rec := do(t, s, http.MethodPost, "/split", body, nil); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestSecurity(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.Service.EnableSecurity = true
		cfg.Service.APIKeys = []string{"secret"}
	})

	if rec := do(t, s, http.MethodGet, "/split/hus", "", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without key, got %d", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/split/hus", "", map[string]string{apiKeyHeader: "wrong"}); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with wrong key, got %d", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/split/hus", "", map[string]string{apiKeyHeader: "secret"}); rec.Code != http.StatusOK {
		t.Errorf("expected 200 with header key, got %d", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/split/hus?api-key=secret", "", nil); rec.Code != http.StatusOK {
		t.Errorf("expected 200 with query key, got %d", rec.Code)
	}
	if rec := do(t, s, http.MethodPost, "/split", `{"text":"hus"}`, nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for text endpoint without key, got %d", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/health", "", nil); rec.Code != http.StatusOK {
		t.Errorf("expected health to stay open, got %d", rec.Code)
	}
}

func TestSecurity_NoKeysConfigured(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.Service.EnableSecurity = true
	})
	if rec := do(t, s, http.MethodGet, "/split/hus?api-key=anything", "", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 when no keys are configured, got %d", rec.Code)
	}
}

func TestCORS(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.Service.Origins = []string{"https://ordnet.dk"}
	})

	rec := do(t, s, http.MethodGet, "/split/hus", "", map[string]string{"Origin": "https://ordnet.dk"})
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://ordnet.dk" {
		t.Errorf("expected allowed origin echoed, got %q", got)
	}

	rec = do(t, s, http.MethodGet, "/split/hus", "", map[string]string{"Origin": "https://example.com"})
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected foreign origin rejected, got %q", got)
	}
}

func TestMetrics(t *testing.T) {
	s := newTestServer(t, nil)
	do(t, s, http.MethodGet, "/split/operakoncert", "", nil)

	rec := do(t, s, http.MethodGet, "/metrics", "", nil)
	body := rec.Body.String()
	for _, want := range []string{
		`dslsplit_http_requests_total{code="200",route="split_word"} 1`,
		`dslsplit_splits_total{method="careful"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in metrics output", want)
		}
	}
}
