package resttest

import (
	"testing"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
)

func TestResourceURIs(t *testing.T) {
	c := Config{RootURI: "/v1", Resource: "users"}
	assert.Equal(t, "/v1/users.json", c.CollectionURI())
	assert.Equal(t, "/v1/users/15.json", c.MemberURI("15"))

	c.RootURI = "/v1/"
	c.Extension = ldvalue.NewOptionalString(".xml")
	assert.Equal(t, "/v1/users.xml", c.CollectionURI())

	c.Extension = ldvalue.NewOptionalString("")
	assert.Equal(t, "/v1/users", c.CollectionURI())
	assert.Equal(t, "/v1/users/a%20b", c.MemberURI("a b"))
}

func TestNewKeepsCopyOfConfig(t *testing.T) {
	c := Config{RootURI: "/v1", Resource: "users"}
	r := New(c, nil, nil)
	c.Resource = "accounts"
	assert.Equal(t, "users", r.Config().Resource)
}
