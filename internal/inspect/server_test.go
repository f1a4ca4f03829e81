package inspect

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/amqpsym/internal/amqp/encoding"
	"github.com/danmuck/amqpsym/internal/testutil/testlog"
)

func newTestServer(t *testing.T, policy encoding.ASCIIPolicy) *Server {
	t.Helper()
	testlog.Start(t)
	gin.SetMode(gin.TestMode)
	s := Appear(Options{Name: "symd-test", Addr: ":0", Policy: policy, MaxRequestBytes: 1024})
	s.RegisterRoutes()
	return s
}

func post(t *testing.T, s *Server, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	s.HTTPRouter().ServeHTTP(rr, req)
	var out map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body: %v body=%s", err, rr.Body.String())
	}
	return rr, out
}

func strp(s string) *string { return &s }

func TestEncodeRouteWritesScalars(t *testing.T) {
	s := newTestServer(t, encoding.ASCIILegacy)
	rr, body := post(t, s, "/v1/symbols/encode", EncodeRequest{Symbols: []*string{strp("amqp.annotation.x-opt"), nil}})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%v", rr.Code, body)
	}
	want := "a315" + "616d71702e616e6e6f746174696f6e2e782d6f7074" + "40"
	if body["hex"] != want {
		t.Fatalf("hex: got %v want %s", body["hex"], want)
	}
	if body["size"] != float64(24) {
		t.Fatalf("size: got %v", body["size"])
	}
	log.Debug().Msgf("inspect/http: encode hex=%v", body["hex"])
}

func TestDecodeRouteReturnsValues(t *testing.T) {
	s := newTestServer(t, encoding.ASCIILegacy)
	hexIn := "a3 03 666f6f 40 e0 0d 02 b3 00000001 61 00000002 6263"
	rr, body := post(t, s, "/v1/symbols/decode", DecodeRequest{Hex: hexIn})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%v", rr.Code, body)
	}
	values, ok := body["values"].([]any)
	if !ok || len(values) != 3 {
		t.Fatalf("values: %#v", body["values"])
	}
	if values[0] != "foo" || values[1] != nil {
		t.Fatalf("scalar values: %#v", values)
	}
	arr, ok := values[2].([]any)
	if !ok || len(arr) != 2 || arr[0] != "a" || arr[1] != "bc" {
		t.Fatalf("array value: %#v", values[2])
	}
	if body["consumed"] != float64(21) {
		t.Fatalf("consumed: got %v", body["consumed"])
	}
}

func TestDecodeRouteMapsCodecErrors(t *testing.T) {
	s := newTestServer(t, encoding.ASCIIStrict)
	tests := []struct {
		hex  string
		kind string
	}{
		{hex: "a1 01 61", kind: "invalid_format_code"},
		{hex: "a3 05 61", kind: "buffer_underrun"},
		{hex: "a3 01 ff", kind: "non_ascii"},
		{hex: "zz", kind: "invalid_request"},
	}
	for _, tt := range tests {
		rr, body := post(t, s, "/v1/symbols/decode", DecodeRequest{Hex: tt.hex})
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", tt.hex, rr.Code)
		}
		if body["kind"] != tt.kind {
			t.Fatalf("%s: kind got %v want %s", tt.hex, body["kind"], tt.kind)
		}
	}
}

func TestEncodeRouteArrayRejectsNull(t *testing.T) {
	s := newTestServer(t, encoding.ASCIILegacy)
	rr, body := post(t, s, "/v1/symbols/encode", EncodeRequest{Symbols: []*string{strp("a"), nil}, Array: true})
	if rr.Code != http.StatusBadRequest || body["kind"] != "null_array_element" {
		t.Fatalf("expected null_array_element, got %d %v", rr.Code, body)
	}

	rr, body = post(t, s, "/v1/symbols/encode", EncodeRequest{Symbols: []*string{strp("a"), strp("bc")}, Array: true})
	if rr.Code != http.StatusOK || body["hex"] != "e00d02b300000001610000000262"+"63" {
		t.Fatalf("array encode: %d %v", rr.Code, body)
	}
}

func TestRequestBodyLimit(t *testing.T) {
	s := newTestServer(t, encoding.ASCIILegacy)
	rr, _ := post(t, s, "/v1/symbols/encode", EncodeRequest{Symbols: []*string{strp(strings.Repeat("x", 2048))}})
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rr.Code)
	}
}

func TestHealthRoute(t *testing.T) {
	s := newTestServer(t, encoding.ASCIIStrict)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	s.HTTPRouter().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"ascii_policy":"strict"`) {
		t.Fatalf("health: %d %s", rr.Code, rr.Body.String())
	}
}
