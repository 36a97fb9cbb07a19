package resttests

import (
	"net/http"

	"github.com/launchdarkly/rest-contract-tests/resttest"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoReadTests(t *T) {
	t.Run("existing resource", func(t *T) {
		payload := t.ValidPayload()
		id := t.CreateResource(payload)

		body := t.Resource().Read(t, resttest.Params{"id": id})
		for key, value := range payload {
			if s, ok := value.(string); ok {
				assert.Equal(t, s, valueString(body.GetByKey(key)), "field %q", key)
			}
		}
	})

	t.Run("missing resource returns 404", func(t *T) {
		t.Resource().Read(t, resttest.Params{"id": t.Params().MissingID, "code": http.StatusNotFound})
	})

	t.Run("collection is wrapped in an envelope", func(t *T) {
		t.CreateResource(t.ValidPayload())

		body := t.Resource().Read(t, resttest.Params{"offset": 0, "length": 1})
		items := body.GetByKey(t.Params().Resource)
		require.Equal(t, ldvalue.ArrayType, items.Type(), "list should have a %q array: %s",
			t.Params().Resource, body)
		assert.Equal(t, 1, items.Count())

		query := body.GetByKey("query")
		for _, field := range []string{"found", "total", "length", "offset"} {
			assert.True(t, query.GetByKey(field).IsInt(), "query.%s should be an integer: %s", field, query)
		}
		assert.Equal(t, t.Params().ExistingCount+1, query.GetByKey("total").IntValue())
	})
}
