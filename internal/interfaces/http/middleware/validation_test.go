package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginPayload struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=admin manager clerk"`
}

func bindPayload(t *testing.T, body string) error {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var payload loginPayload
	return c.ShouldBindJSON(&payload)
}

func TestFormatValidationDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	SetupValidator()

	err := bindPayload(t, `{"username":"ab","password":"short","role":"root"}`)
	require.Error(t, err)

	details := FormatValidationDetails(err)
	require.Len(t, details, 3)

	byField := map[string]string{}
	for _, d := range details {
		byField[d.Field] = d.Message
	}
	assert.Equal(t, "Must be at least 3 characters", byField["username"])
	assert.Equal(t, "Must be at least 8 characters", byField["password"])
	assert.Equal(t, "Must be one of: admin manager clerk", byField["role"])
}

func TestFormatValidationDetails_RequiredUsesJSONNames(t *testing.T) {
	gin.SetMode(gin.TestMode)
	SetupValidator()

	err := bindPayload(t, `{}`)
	require.Error(t, err)

	details := FormatValidationDetails(err)
	require.Len(t, details, 2)
	assert.Equal(t, "username", details[0].Field)
	assert.Equal(t, "This field is required", details[0].Message)
}

func TestFormatValidationDetails_NonValidationError(t *testing.T) {
	assert.Nil(t, FormatValidationDetails(errors.New("unexpected EOF")))
}
