package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rg-atte/rs-cache/cache"
	"github.com/rg-atte/rs-cache/common"
	"github.com/rg-atte/rs-cache/config"
	"github.com/rg-atte/rs-cache/web"
)

const (
	defaultConfigFilename = "/etc/cacheserver.cfg"
)

func main() {
	var configFilename string
	flag.StringVar(&configFilename, "c", "", "configuration filename")
	flag.Parse()

	if configFilename == "" {
		configFilename = defaultConfigFilename
	}

	f, err := os.Open(configFilename)
	if err != nil {
		log.Fatalf("can not open config file %s: %s", configFilename, err)
	}
	defer f.Close()

	cfg, err := config.ReadServerConfig(f)
	if err != nil {
		log.Fatalf("error reading config: %s", err)
	}

	lf, err := common.ConfigureLogging(cfg.LogFileName, cfg.Debug)
	if err != nil {
		log.Fatalf("error configuring logging: %s", err)
	}
	if lf != nil {
		defer lf.Close()
	}

	c, err := cache.Open(cfg.CachePath)
	if err != nil {
		log.Fatalf("error opening cache at %s: %s", cfg.CachePath, err)
	}
	defer c.Close()

	srv, err := web.NewServer(c, cfg).Start()
	if err != nil {
		log.Fatalf("error starting server: %s", err)
	}
	log.Println("server started")

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Reset()

	<-sigs
	srv.Close()
}
