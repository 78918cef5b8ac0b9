package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/autoventas-api/internal/domain/entity"
	"github.com/jhoicas/autoventas-api/pkg/logger"
)

func TestLogMailer_RegistraEnlace(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMailer("http://localhost:3000/", logger.NewWithWriter(&buf, "info"))

	err := m.SendPasswordReset(context.Background(), &entity.User{ID: "u-1", Email: "alice@example.com"}, "abc.def.ghi")
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "http://localhost:3000/reset-password/abc.def.ghi", entry["reset_link"])
	assert.Equal(t, "u-1", entry["user_id"])
	assert.Equal(t, "info", entry["level"])
}
