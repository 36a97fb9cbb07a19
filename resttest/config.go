package resttest

import (
	"net/url"
	"regexp"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// DefaultExtension is appended to every resource URI unless Config.Extension says otherwise.
const DefaultExtension = ".json"

// Config describes the resource under test. It is a plain value owned by the caller; a
// Resource keeps its own copy.
type Config struct {
	// RootURI is the path prefix of the API, such as "/v1".
	RootURI string

	// Resource is the pluralized resource name. It is used both as a URI segment and as the
	// key of the item array in list responses.
	Resource string

	// Extension is appended to resource URIs. If it is undefined, DefaultExtension is used;
	// set it to an empty string to disable extensions.
	Extension ldvalue.OptionalString

	// Debug enables tracing of every request and response through the debug logger.
	Debug bool

	// Location, if set, must match the Location header returned by a successful create.
	Location *regexp.Regexp
}

func (c Config) extension() string {
	return c.Extension.OrElse(DefaultExtension)
}

func (c Config) resourceURI() string {
	return strings.TrimSuffix(c.RootURI, "/") + "/" + c.Resource
}

// CollectionURI returns the URI used for creating and listing resources.
func (c Config) CollectionURI() string {
	return c.resourceURI() + c.extension()
}

// MemberURI returns the URI of the resource with the specified ID.
func (c Config) MemberURI(id string) string {
	return c.resourceURI() + "/" + url.PathEscape(id) + c.extension()
}
