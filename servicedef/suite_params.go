package servicedef

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// EnvPrefix is the prefix of environment variables that override suite parameters, for
// instance RESTTEST_RESOURCE or RESTTEST_PAGINATION_COUNT.
const EnvPrefix = "RESTTEST"

const (
	DefaultRootURI   = "/v1"
	DefaultResource  = "users"
	DefaultMissingID = "0"
)

// SuiteParams describes the resource that the contract test suite exercises. It can be read
// from a config file in any format viper supports.
type SuiteParams struct {
	RootURI   string                 `mapstructure:"rootUri"`
	Resource  string                 `mapstructure:"resource"`
	Extension ldvalue.OptionalString `mapstructure:"-"`
	Location  string                 `mapstructure:"location"`

	// ValidPayload is used to create resources. If it is empty, the suite generates users.
	ValidPayload map[string]interface{} `mapstructure:"validPayload"`

	// InvalidPayload must be rejected by the service. If it is empty, the validation tests
	// are skipped.
	InvalidPayload map[string]interface{} `mapstructure:"invalidPayload"`

	UpdatePayload map[string]interface{} `mapstructure:"updatePayload"`

	// MissingID must not identify any resource.
	MissingID string `mapstructure:"missingId"`

	// ExistingCount is the number of resources that exist before the suite starts.
	ExistingCount int `mapstructure:"existingCount"`

	Pagination PaginationParams `mapstructure:"-"`
}

type PaginationParams struct {
	Count     ldvalue.OptionalInt
	MaxLength ldvalue.OptionalInt
}

// LoadSuiteParams reads suite parameters from the specified file, if any, and from
// environment variables.
func LoadSuiteParams(configFile string) (SuiteParams, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("rootUri", DefaultRootURI)
	v.SetDefault("resource", DefaultResource)
	v.SetDefault("location", "")
	v.SetDefault("missingId", DefaultMissingID)
	v.SetDefault("existingCount", 0)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return SuiteParams{}, fmt.Errorf("cannot read config file %s: %w", configFile, err)
		}
	}

	var p SuiteParams
	if err := v.Unmarshal(&p); err != nil {
		return SuiteParams{}, fmt.Errorf("invalid configuration: %w", err)
	}
	if v.IsSet("extension") {
		p.Extension = ldvalue.NewOptionalString(v.GetString("extension"))
	}
	if v.IsSet("pagination.count") {
		p.Pagination.Count = ldvalue.NewOptionalInt(v.GetInt("pagination.count"))
	}
	if v.IsSet("pagination.maxLength") {
		p.Pagination.MaxLength = ldvalue.NewOptionalInt(v.GetInt("pagination.maxLength"))
	}
	if p.ExistingCount < 0 {
		return SuiteParams{}, fmt.Errorf("existingCount must not be negative, not %d", p.ExistingCount)
	}
	return p, nil
}
