// Package resttest is a test helper for REST resources that follow the usual conventions:
// a collection URI that accepts POST and paginated GET, and member URIs that accept GET, PUT
// and DELETE. A Resource issues the requests through an Invoker and checks the status codes,
// content types, Location headers and list envelopes of the responses.
//
// Operations take a require.TestingT, so they work both in ordinary Go tests and in the
// contract test runner. When an operation fails, the failure is attributed to the line of the
// test that called it rather than to this package.
//
//	users := resttest.New(resttest.Config{RootURI: "/v1", Resource: "users"}, invoker, nil)
//	location, _ := users.Create(t, resttest.Params{"email": "someone@example.com"})
//	users.Read(t, resttest.Params{"id": 1})
//	users.CreateInvalid(t, resttest.Params{"email": "nope"})
package resttest
