package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"github.com/playabrava/gestor-camping/docs"
)

func TestSwagger_Registrado(t *testing.T) {
	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Paths map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	for _, p := range []string{"/api/auth/login", "/api/incidents", "/api/incidents/{id}/status", "/api/reports/incidents.csv"} {
		assert.Contains(t, doc.Paths, p)
	}
}
