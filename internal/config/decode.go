package config

import (
	"strings"

	"github.com/spf13/pflag"
)

// DecodeConfig holds configuration for the decode command.
type DecodeConfig struct {
	Common
	Message  string
	Compare  string
	Hex      bool
	URLParam bool
	JSON     bool
}

// LoadDecode merges config file, environment variables, and flags into DecodeConfig.
func LoadDecode(cfgFile string, flags *pflag.FlagSet) (DecodeConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"hex":       false,
		"url-param": false,
		"json":      false,
	})
	if err != nil {
		return DecodeConfig{}, err
	}

	cfg := DecodeConfig{
		Common:   loadCommon(v),
		Message:  strings.TrimSpace(v.GetString("message")),
		Compare:  strings.TrimSpace(v.GetString("compare")),
		Hex:      v.GetBool("hex"),
		URLParam: v.GetBool("url-param"),
		JSON:     v.GetBool("json"),
	}
	return cfg, nil
}
