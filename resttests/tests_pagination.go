package resttests

import (
	"github.com/launchdarkly/rest-contract-tests/resttest"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
)

func DoPaginationTests(t *T) {
	t.Run("pages through the whole collection", func(t *T) {
		params := t.Params()
		opts := resttest.PaginateOptions{
			Count:         params.Pagination.Count,
			MaxLength:     params.Pagination.MaxLength,
			ExistingCount: params.ExistingCount,
			SkipCreate:    true,
		}
		pages := t.Resource().Paginate(t, opts, func(index int) resttest.Params {
			t.CreateResource(t.ValidPayload())
			return nil
		})
		t.Debug("Read %d pages", len(pages))
	})

	t.Run("page length of one", func(t *T) {
		params := t.Params()
		count := params.Pagination.Count.OrElse(resttest.DefaultPaginationCount)
		if count > 10 {
			count = 10
		}
		pages := t.Resource().Paginate(t, resttest.PaginateOptions{
			Count:         ldvalue.NewOptionalInt(count),
			MaxLength:     ldvalue.NewOptionalInt(1),
			ExistingCount: params.ExistingCount,
			SkipCreate:    true,
		}, func(index int) resttest.Params {
			t.CreateResource(t.ValidPayload())
			return nil
		})
		assert.Len(t, pages, count+params.ExistingCount)
	})
}
