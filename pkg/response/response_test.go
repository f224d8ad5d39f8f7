package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	appErrors "github.com/dvcruz/progtrack/pkg/errors"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	return c, recorder
}

func TestSuccessEnvelope(t *testing.T) {
	c, recorder := newTestContext(t)

	Success(c, http.StatusOK, map[string]string{"name": "Solar Dryer"})

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}

	var payload Response
	if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !payload.Success {
		t.Fatal("expected success=true")
	}
	if payload.Error != nil {
		t.Fatal("expected no error block")
	}
}

func TestErrorEnvelopeUsesAppErrorStatus(t *testing.T) {
	c, recorder := newTestContext(t)

	Error(c, appErrors.ErrForbidden)

	if recorder.Code != http.StatusForbidden {
		t.Fatalf("status = %d", recorder.Code)
	}

	var payload Response
	if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.Success {
		t.Fatal("expected success=false")
	}
	if payload.Error == nil || payload.Error.Code != "FORBIDDEN" {
		t.Fatalf("error block = %+v", payload.Error)
	}
}

func TestErrorEnvelopeDefaultsToInternal(t *testing.T) {
	c, recorder := newTestContext(t)

	Error(c, nil)

	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", recorder.Code)
	}
}

func TestPageMeta(t *testing.T) {
	meta := PageMeta(2, 15, 31)
	if meta.TotalPages != 3 {
		t.Fatalf("TotalPages = %d", meta.TotalPages)
	}
	if meta.Total != 31 || meta.Page != 2 || meta.PerPage != 15 {
		t.Fatalf("meta = %+v", meta)
	}
}
