package resttests

import (
	"net/http"

	"github.com/launchdarkly/rest-contract-tests/resttest"

	"github.com/stretchr/testify/assert"
)

func DoUpdateTests(t *T) {
	t.Run("returns 204", func(t *T) {
		id := t.CreateResource(t.ValidPayload())
		t.Resource().Update(t, withID(id, t.UpdatePayload()))
	})

	t.Run("updated values can be read", func(t *T) {
		id := t.CreateResource(t.ValidPayload())
		update := t.UpdatePayload()
		t.Resource().Update(t, withID(id, update))

		body := t.Resource().Read(t, resttest.Params{"id": id})
		for key, value := range update {
			if s, ok := value.(string); ok {
				assert.Equal(t, s, valueString(body.GetByKey(key)), "field %q", key)
			}
		}
	})

	t.Run("missing resource returns 404", func(t *T) {
		params := withID(t.Params().MissingID, t.UpdatePayload())
		params["code"] = http.StatusNotFound
		t.Resource().Update(t, params)
	})

	t.Run("invalid payload is rejected with 400", func(t *T) {
		payload := t.InvalidPayload()
		id := t.CreateResource(t.ValidPayload())
		t.Resource().UpdateInvalid(t, withID(id, payload))
	})
}
