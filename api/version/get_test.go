package version

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name         string
		info         Info
		expectedBody map[string]any
	}{
		{
			name: "build information",
			info: Info{Version: "1.2.3", GitCommit: "abc1234", BuildTime: "2024-05-01T12:00:00Z"},
			expectedBody: map[string]any{
				"name":       "Repo Radar API",
				"version":    "1.2.3",
				"commit":     "abc1234",
				"build_time": "2024-05-01T12:00:00Z",
				"status":     "running",
			},
		},
		{
			name: "missing version defaults to dev",
			info: Info{},
			expectedBody: map[string]any{
				"name":    "Repo Radar API",
				"version": "dev",
				"status":  "running",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			RegisterRoutes(router, tt.info)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, http.StatusOK, w.Code)

			var response map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

			for key, expectedValue := range tt.expectedBody {
				assert.Equal(t, expectedValue, response[key], "Key: %s", key)
			}
		})
	}
}
