package resttests

import (
	"net/http"

	"github.com/launchdarkly/rest-contract-tests/resttest"
)

func DoDeleteTests(t *T) {
	t.Run("returns 204 and removes the resource", func(t *T) {
		id := t.CreateResource(t.ValidPayload())
		t.Resource().Delete(t, resttest.Params{"id": id})
		t.Resource().Read(t, resttest.Params{"id": id, "code": http.StatusNotFound})
	})

	t.Run("deleting twice returns 404", func(t *T) {
		id := t.CreateResource(t.ValidPayload())
		t.Resource().Delete(t, resttest.Params{"id": id})
		t.Resource().Delete(t, resttest.Params{"id": id, "code": http.StatusNotFound})
	})

	t.Run("missing resource returns 404", func(t *T) {
		t.Resource().Delete(t, resttest.Params{"id": t.Params().MissingID, "code": http.StatusNotFound})
	})
}
