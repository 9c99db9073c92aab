package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/enlistment/internal/pkg/apperrors"
)

func TestParseIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"12", 12, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Params = gin.Params{{Key: "id", Value: tt.raw}}

		id, err := ParseIDParam(c, "id")
		if tt.wantErr {
			require.Error(t, err, tt.raw)
			assert.ErrorIs(t, err, apperrors.ErrBadRequest)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, id)
	}
}
