package webhooks

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupCallbackRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/callback/:provider", NewCallbackController().Handle)
	return router
}

// brokenBody fails on the first read, like a client dropping mid-request
type brokenBody struct{}

func (brokenBody) Read([]byte) (int, error) {
	return 0, errors.New("read: connection reset by peer")
}

// Providers redeliver on any non-200, so the callback endpoint must ack
// every delivery it cannot process, in the shape the provider expects.
func TestCallbackAlwaysAcks(t *testing.T) {
	router := setupCallbackRouter()

	t.Run("mpesa malformed payload", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/callback/mpesa", strings.NewReader(`{"Body":{}}`))
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		var ack struct {
			ResultCode int    `json:"ResultCode"`
			ResultDesc string `json:"ResultDesc"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &ack); err != nil {
			t.Fatalf("decode ack: %v", err)
		}
		if ack.ResultCode != 0 || ack.ResultDesc != "Accepted" {
			t.Errorf("ack = %+v", ack)
		}
	})

	t.Run("mpesa not json", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/callback/mpesa", strings.NewReader(`<xml/>`))
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})

	t.Run("paypal malformed payload", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/callback/paypal", strings.NewReader(`{"event_type":""}`))
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		var ack struct {
			Status string `json:"status"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &ack); err != nil {
			t.Fatalf("decode ack: %v", err)
		}
		if ack.Status != "ok" {
			t.Errorf("ack status = %q, want ok", ack.Status)
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/callback/skrill", strings.NewReader(`{}`))
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if !strings.Contains(w.Body.String(), `"ok"`) {
			t.Errorf("body = %s", w.Body.String())
		}
	})

	t.Run("unreadable body", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/callback/mpesa", brokenBody{})
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})
}
