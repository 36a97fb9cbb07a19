package resttest

import (
	"math/rand"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/require"
)

const (
	DefaultPaginationCount     = 512
	DefaultPaginationMaxLength = 100
)

// PaginateOptions controls Resource.Paginate.
type PaginateOptions struct {
	// Count is the number of resources to create; the default is DefaultPaginationCount.
	Count ldvalue.OptionalInt

	// MaxLength is the largest page length to request; the default is
	// DefaultPaginationMaxLength.
	MaxLength ldvalue.OptionalInt

	// SkipCreate means that the builder creates its resources itself. Paginate still calls it
	// once per index.
	SkipCreate bool

	// ReadParams are sent with every page request, in addition to offset and length.
	ReadParams Params

	// ExistingCount is the number of resources that already existed before Paginate was called.
	ExistingCount int

	// Source provides the random page lengths. If nil, a time-seeded source is used.
	Source rand.Source
}

// Page describes one request made by Paginate.
type Page struct {
	Offset   int
	Length   int
	Expected int
}

// Paginate creates Count resources from the payloads returned by build, and then reads the
// whole collection back in pages of random length between 1 and MaxLength. Every page must
// report the full number of resources in query.found and query.total, and must contain
// exactly the number of items that remain, up to the requested length, at the expected offset.
//
// It returns the pages that were requested.
func (r *Resource) Paginate(t require.TestingT, opts PaginateOptions, build func(index int) Params) []Page {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	count := opts.Count.OrElse(DefaultPaginationCount)
	maxLength := opts.MaxLength.OrElse(DefaultPaginationMaxLength)
	if count < 0 || opts.ExistingCount < 0 {
		r.fail(t, "pagination counts must not be negative (count %d, existing %d)", count, opts.ExistingCount)
	}
	if maxLength < 1 {
		r.fail(t, "pagination max length must be at least 1, not %d", maxLength)
	}
	if build == nil && !opts.SkipCreate {
		r.fail(t, "pagination needs a payload builder to create resources")
	}

	for i := 0; i < count; i++ {
		var payload Params
		if build != nil {
			payload = build(i)
		}
		if !opts.SkipCreate {
			r.Create(t, payload)
		}
	}

	source := opts.Source
	if source == nil {
		source = rand.NewSource(time.Now().UnixNano())
	}
	rng := rand.New(source)

	total := count + opts.ExistingCount
	var pages []Page
	retrieved, offset := 0, 0
	for retrieved < total {
		length := drawPageLength(rng, maxLength)
		expected := length
		if remaining := total - retrieved; expected > remaining {
			expected = remaining
		}
		r.debugf("Requesting offset=%d, length=%d", offset, length)
		r.debugf("Expecting %d", expected)

		body := r.Read(t, mergeParams(opts.ReadParams, Params{"offset": offset, "length": length}))
		r.checkPage(t, body, total, offset, expected)
		pages = append(pages, Page{Offset: offset, Length: length, Expected: expected})

		retrieved += expected
		offset = retrieved
	}
	return pages
}

// drawPageLength returns a length in [1, maxLength].
func drawPageLength(rng *rand.Rand, maxLength int) int {
	return rng.Intn(maxLength) + 1
}

func (r *Resource) checkPage(t require.TestingT, body ldvalue.Value, total, offset, expected int) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	items := body.GetByKey(r.config.Resource)
	if items.Type() != ldvalue.ArrayType {
		r.fail(t, "expected a %q array in the response but got: %s", r.config.Resource, body.JSONString())
	}
	r.debugf("Received %d records", items.Count())
	if items.Count() != expected {
		r.fail(t, "expected %d %s at offset %d but got %d", expected, r.config.Resource, offset, items.Count())
	}

	query := body.GetByKey("query")
	r.debugf("Found %s records", query.GetByKey("found").JSONString())
	for _, field := range []struct {
		name     string
		expected int
	}{
		{"found", total},
		{"total", total},
		{"length", expected},
		{"offset", offset},
	} {
		actual := query.GetByKey(field.name)
		if !actual.IsInt() || actual.IntValue() != field.expected {
			r.fail(t, "expected query.%s to be %d but got %s (offset %d)",
				field.name, field.expected, actual.JSONString(), offset)
		}
	}
}
