package repo

import (
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

type Duration time.Duration

func (d *Duration) MarshalText() (text []byte, err error) {
	return []byte(time.Duration(*d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	x, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(x)
	return nil
}

func (d *Duration) ToDuration() time.Duration {
	return time.Duration(*d)
}

func (d *Duration) String() string {
	return time.Duration(*d).String()
}

func StringToTimeDurationHookFunc() mapstructure.DecodeHookFunc {
	return func(
		f reflect.Type,
		t reflect.Type,
		data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		if t != reflect.TypeOf(Duration(5)) {
			return data, nil
		}

		d, err := time.ParseDuration(data.(string))
		if err != nil {
			return nil, err
		}
		return Duration(d), nil
	}
}

type Config struct {
	Log      Log      `mapstructure:"log" toml:"log"`
	Network  Network  `mapstructure:"network" toml:"network"`
	Artifact Artifact `mapstructure:"artifact" toml:"artifact"`
	Account  Account  `mapstructure:"account" toml:"account"`
}

type Log struct {
	Level string `mapstructure:"level" toml:"level"`
}

// Network describes the target chain. ChainID is the short ASCII chain id
// string whose big-endian bytes enter the Argent hash preimage. The
// gateway endpoints are consumed by the external dispatch collaborator,
// not by this module.
type Network struct {
	Name             string   `mapstructure:"name" toml:"name"`
	ChainID          string   `mapstructure:"chain_id" toml:"chain_id"`
	GatewayURL       string   `mapstructure:"gateway_url" toml:"gateway_url"`
	FeederGatewayURL string   `mapstructure:"feeder_gateway_url" toml:"feeder_gateway_url"`
	RequestTimeout   Duration `mapstructure:"request_timeout" toml:"request_timeout"`
}

// Artifact pins the wallet contract artifacts each variant deploys.
type Artifact struct {
	Path                string `mapstructure:"path" toml:"path"`
	OpenZeppelinVersion string `mapstructure:"openzeppelin_version" toml:"openzeppelin_version"`
	ArgentVersion       string `mapstructure:"argent_version" toml:"argent_version"`
}

type Account struct {
	DefaultMaxFee uint64 `mapstructure:"default_max_fee" toml:"default_max_fee"`
}

func DefaultConfig() *Config {
	return &Config{
		Log: Log{
			Level: "info",
		},
		Network: Network{
			Name:             "devnet",
			ChainID:          "SN_GOERLI",
			GatewayURL:       "http://127.0.0.1:5050/gateway",
			FeederGatewayURL: "http://127.0.0.1:5050/feeder_gateway",
			RequestTimeout:   Duration(30 * time.Second),
		},
		Artifact: Artifact{
			Path:                "artifacts",
			OpenZeppelinVersion: "0.5.1",
			ArgentVersion:       "0.2.3",
		},
		Account: Account{
			DefaultMaxFee: 0,
		},
	}
}
