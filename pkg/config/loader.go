package config

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix namespaces the environment variables consulted by Load.
const EnvPrefix = "SKELTER_"

// envToPath maps recognized environment variables to config paths.
var envToPath = map[string]string{
	"SKELTER_HOME":                "home",
	"SKELTER_WEBAPPS_NAME":        "webapps.name",
	"SKELTER_SOURCE_DIR":          "webapps.source_dir",
	"SKELTER_TEMPLATES_DIR":       "webapps.templates_dir",
	"SKELTER_SERVER_HOST":         "server.host",
	"SKELTER_SERVER_PORT":         "server.port",
	"SKELTER_LONG_TEXT_THRESHOLD": "generator.long_text_threshold",
	"SKELTER_AUDITED_COLUMNS":     "generator.audited_columns",
}

// Load builds the configuration from built-in defaults overridden by
// environment variables, then validates it.
func Load(_ context.Context) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load default configuration: %w", err)
	}
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			if path, ok := envToPath[key]; ok {
				return path, value
			}
			return "", nil
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	return unmarshalAndValidate(k)
}

func unmarshalAndValidate(k *koanf.Koanf) (*Config, error) {
	var config Config
	if err := k.UnmarshalWithConf("", &config, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &config,
			TagName:          "koanf",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}
