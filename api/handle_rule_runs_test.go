package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/deskhive/deskhive-backend/dto"
	"github.com/deskhive/deskhive-backend/models"
	"github.com/deskhive/deskhive-backend/repositories"
	"github.com/deskhive/deskhive-backend/usecases"
)

// The router is mounted without the authentication middleware so that no
// caller is stored in the context: requests that pass parsing and binding are
// rejected by the usecase with UnAuthorized before any repository call.
func newRuleRunTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	uc := usecases.NewUsecases(repositories.ExecutorGetter{})
	r := gin.New()
	r.POST("/automation-rules/:rule_id/runs", handleInvokeRuleRun(uc))
	r.GET("/automation-runs/:run_id", handleGetRuleRun(uc))
	return r
}

func decodeAPIError(t *testing.T, recorder *httptest.ResponseRecorder) dto.APIErrorResponse {
	t.Helper()
	var response dto.APIErrorResponse
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	return response
}

func TestHandleInvokeRuleRun(t *testing.T) {
	router := newRuleRunTestRouter()

	t.Run("invalid rule id is a bad request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/automation-rules/not-a-uuid/runs", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, decodeAPIError(t, recorder).Error, "rule_id")
	})

	t.Run("unknown trigger_source is a bad request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost,
			"/automation-rules/"+uuid.NewString()+"/runs",
			strings.NewReader(`{"trigger_source":"weekly"}`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.NotEmpty(t, decodeAPIError(t, recorder).Error)
	})

	t.Run("malformed json body is a bad request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost,
			"/automation-rules/"+uuid.NewString()+"/runs",
			strings.NewReader(`{"dry_run":`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("empty body is tolerated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost,
			"/automation-rules/"+uuid.NewString()+"/runs", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		// Parsing succeeded with all defaults; the missing caller identity is
		// what gets rejected.
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("valid body without a caller is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost,
			"/automation-rules/"+uuid.NewString()+"/runs",
			strings.NewReader(`{"dry_run":true,"source_payload":{"status":"late"},"trigger_source":"manual"}`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.NotEmpty(t, decodeAPIError(t, recorder).Error)
	})
}

func TestHandleGetRuleRun(t *testing.T) {
	router := newRuleRunTestRouter()

	t.Run("invalid run id is a bad request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/automation-runs/not-a-uuid", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, decodeAPIError(t, recorder).Error, "run_id")
	})

	t.Run("without a caller is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/automation-runs/"+uuid.NewString(), nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestTriggerSourceDefaulting(t *testing.T) {
	t.Run("explicit value wins", func(t *testing.T) {
		assert.Equal(t, models.TriggerSourceManual,
			triggerSource("manual", models.TrustedCaller{}))
		assert.Equal(t, models.TriggerSourceScheduled,
			triggerSource("scheduled", models.AuthenticatedCaller{UserId: uuid.New()}))
	})

	t.Run("trusted caller defaults to scheduled", func(t *testing.T) {
		assert.Equal(t, models.TriggerSourceScheduled,
			triggerSource("", models.TrustedCaller{}))
	})

	t.Run("authenticated caller defaults to manual", func(t *testing.T) {
		assert.Equal(t, models.TriggerSourceManual,
			triggerSource("", models.AuthenticatedCaller{UserId: uuid.New()}))
	})
}
