package resttests

import (
	"github.com/launchdarkly/rest-contract-tests/resttest"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoCreateTests(t *T) {
	t.Run("returns 201 with a Location header", func(t *T) {
		id := t.CreateResource(t.ValidPayload())
		assert.NotEmpty(t, id)
	})

	t.Run("created resource can be read", func(t *T) {
		payload := t.ValidPayload()
		id := t.CreateResource(payload)

		body := t.Resource().Read(t, resttest.Params{"id": id})
		require.Equal(t, ldvalue.ObjectType, body.Type(), "resource should be a JSON object: %s", body)
		for key := range payload {
			assert.False(t, body.GetByKey(key).IsNull(), "created resource should have %q", key)
		}
	})

	t.Run("each resource gets its own ID", func(t *T) {
		id1 := t.CreateResource(t.ValidPayload())
		id2 := t.CreateResource(t.ValidPayload())
		assert.NotEqual(t, id1, id2)
	})

	t.Run("invalid payload is rejected with 400", func(t *T) {
		payload := t.InvalidPayload()
		body := t.Resource().CreateInvalid(t, payload)
		t.Debug("Error body: %s", body)
	})
}
