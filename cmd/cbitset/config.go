package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/deepakm/cbitset-go/lib/bitset"
)

// cliConfig is the optional cbitset.toml configuration, following
// lookbusy1344-arm_emulator/config.Config's nested, toml-tagged struct
// with a DefaultConfig constructor.
type cliConfig struct {
	Bitset struct {
		OffsetWidth64 bool   `toml:"offset_width_64"`
		OOMPolicy     string `toml:"oom_policy"` // "propagate" or "abort"
	} `toml:"bitset"`
}

func defaultCLIConfig() *cliConfig {
	cfg := &cliConfig{}
	cfg.Bitset.OffsetWidth64 = false
	cfg.Bitset.OOMPolicy = "propagate"
	return cfg
}

// loadCLIConfig loads path if it exists, otherwise returns defaults.
func loadCLIConfig(path string) (*cliConfig, error) {
	cfg := defaultCLIConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("cbitset: parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *cliConfig) bitsetConfig() bitset.Config {
	policy := bitset.OOMPropagate
	if c.Bitset.OOMPolicy == "abort" {
		policy = bitset.OOMAbort
	}
	return bitset.Config{
		OffsetWidth64: c.Bitset.OffsetWidth64,
		OOMPolicy:     policy,
	}
}
