package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexrentacar/backoffice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type vehicleForm struct {
	Plate string `json:"plate" binding:"required,plate"`
	Role  string `json:"role" binding:"omitempty,role"`
	Since string `json:"since" binding:"omitempty,date"`
	Year  int    `json:"year" binding:"omitempty,min=1950"`
}

func TestRegisterValidators(t *testing.T) {
	v := validator.New()
	v.SetTagName("binding")
	RegisterValidators(v)

	assert.NoError(t, v.Struct(vehicleForm{Plate: "ab 123 cd", Role: "mechanic", Since: "2025-01-06"}))

	err := v.Struct(vehicleForm{Plate: "A!", Role: "root", Since: "06/01/2025", Year: 1900})
	require.Error(t, err)
	resp := FormatValidationErrors(err, "req-1")
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)

	fields := map[string]string{}
	for _, d := range resp.Error.Details {
		fields[d.Field] = d.Message
	}
	assert.Equal(t, "Invalid plate: 3 to 20 letters, digits or dashes", fields["plate"])
	assert.Equal(t, "Must be one of: admin user mechanic", fields["role"])
	assert.Equal(t, "Invalid date, expected YYYY-MM-DD", fields["since"])
	assert.Equal(t, "Must be at least 1950", fields["year"])
}

func TestHandleValidationError(t *testing.T) {
	require.NoError(t, SetupValidator())

	r := gin.New()
	r.Use(RequestID())
	r.POST("/vehicles", func(c *gin.Context) {
		var form vehicleForm
		if err := c.ShouldBindJSON(&form); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	body, _ := json.Marshal(map[string]any{"plate": "?"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/vehicles", bytes.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"plate"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/vehicles", bytes.NewReader([]byte("{"))))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), dto.ErrCodeInvalidJSON)
}
