package resttests

import (
	"github.com/launchdarkly/rest-contract-tests/framework"
	"github.com/launchdarkly/rest-contract-tests/resttest"
	"github.com/launchdarkly/rest-contract-tests/servicedef"
)

func RunTestSuite(
	params servicedef.SuiteParams,
	invoker resttest.Invoker,
	filter framework.Filter,
	testLogger framework.TestLogger,
) (framework.Results, error) {
	config, err := ResourceConfig(params)
	if err != nil {
		return framework.Results{}, err
	}
	env := &environment{params: params, config: config, invoker: invoker}
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := newTestScope(c, env)

		t.Run("create", DoCreateTests)
		t.Run("read", DoReadTests)
		t.Run("update", DoUpdateTests)
		t.Run("delete", DoDeleteTests)
		t.Run("pagination", DoPaginationTests)
	}), nil
}
