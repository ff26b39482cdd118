package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type ParserCfg struct {
	AvoidRedundantType bool `yaml:"avoid_redundant_type" json:"avoid_redundant_type"`
}

type CacheCfg struct {
	Backend  string `yaml:"backend" json:"backend"` // memory, redis, mongo, hybrid
	TTLHours int    `yaml:"ttl_hours" json:"ttl_hours"`
	L1Size   int    `yaml:"l1_size" json:"l1_size"`
}

type Cfg struct {
	Parser ParserCfg `yaml:"parser" json:"parser"`
	Cache  CacheCfg  `yaml:"cache" json:"cache"`
}

// Redundant-type suppression is opt-in. A parse reports the type it
// matched unless the deployment asks for the cleanup.
var C = Cfg{
	Parser: ParserCfg{AvoidRedundantType: false},
	Cache:  CacheCfg{Backend: "memory", TTLHours: 24, L1Size: 10000},
}

// Load reads tuning settings from a yaml file on top of the defaults.
// A missing file leaves the defaults in place.
func Load(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides()
			return nil
		}
		return err
	}
	if err := yaml.Unmarshal(b, &C); err != nil {
		return err
	}
	applyEnvOverrides()
	return nil
}

func applyEnvOverrides() {
	switch os.Getenv("AVOID_REDUNDANT_TYPE") {
	case "0":
		C.Parser.AvoidRedundantType = false
	case "1":
		C.Parser.AvoidRedundantType = true
	}
	if backend := os.Getenv("CACHE_BACKEND"); backend != "" {
		C.Cache.Backend = backend
	}
}

func CacheTTL() time.Duration { return time.Duration(C.Cache.TTLHours) * time.Hour }

func RequestTimeout() time.Duration { return 1500 * time.Millisecond }
