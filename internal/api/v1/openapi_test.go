package apiv1

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The served spec must stay valid and in sync with the registered routes.
func TestOpenAPISpecMatchesRoutes(t *testing.T) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile("../../../public/docs/v1/openapi.yml")
	require.NoError(t, err)

	require.NoError(t, doc.Validate(context.Background()))

	assert.Equal(t, "TableFox API", doc.Info.Title)

	for _, path := range []string{"/ping", "/subscription", "/entitlement"} {
		item := doc.Paths.Find(path)
		require.NotNilf(t, item, "path %s missing from spec", path)
		assert.NotNilf(t, item.Get, "GET %s missing from spec", path)
	}

	// Protected operations must declare the API key scheme
	for _, path := range []string{"/subscription", "/entitlement"} {
		op := doc.Paths.Find(path).Get
		require.NotNil(t, op.Security)
		found := false
		for _, req := range *op.Security {
			if _, ok := req["ApiKeyAuth"]; ok {
				found = true
			}
		}
		assert.Truef(t, found, "GET %s must require ApiKeyAuth", path)
	}
}
