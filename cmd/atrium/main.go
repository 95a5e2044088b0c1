package main

import (
	"flag"
	"fmt"

	"github.com/go-atrium/atrium/internal/bootstrap"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/9/12
 * @file: main.go
 * @description: engine program
 */

var (
	configFile string
)

func init() {
	flag.StringVar(&configFile, "conf", "conf.d/config.toml", "conf file path, e.g. -conf ./conf.d/config.toml")
}

func main() {
	flag.Parse()

	app, cleanup, err := bootstrap.Bootstrap(configFile)
	if err != nil {
		panic(fmt.Sprintf("bootstrap failed: %v", err))
	}

	bootstrap.Run(app, cleanup)
}
