package config

import (
	"fmt"
	"io"

	"github.com/viert/properties"
)

const (
	defaultLogFileName = "/var/log/cacheserver.log"
)

// ServerCfg represents a cache server config
type ServerCfg struct {
	Bind        string
	CachePath   string
	LogFileName string
	Debug       bool
}

// ReadServerConfig reads and returns a cache server config
// from an io.Reader object
func ReadServerConfig(r io.Reader) (*ServerCfg, error) {
	p, err := properties.Read(r)
	if err != nil {
		return nil, err
	}

	cfg := &ServerCfg{}

	cfg.Bind, err = p.GetString("main.bind")
	if err != nil {
		return nil, fmt.Errorf("error reading main.bind: %s", err)
	}

	cfg.CachePath, err = p.GetString("cache.path")
	if err != nil {
		return nil, fmt.Errorf("error reading cache.path: %s", err)
	}

	cfg.LogFileName, err = p.GetString("main.log")
	if err != nil {
		cfg.LogFileName = defaultLogFileName
	}

	cfg.Debug, err = p.GetBool("main.debug")
	if err != nil {
		cfg.Debug = false
	}

	return cfg, nil
}
