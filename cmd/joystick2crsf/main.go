// cmd/joystick2crsf/main.go
package main

import (
	"fmt"
	"os"

	"github.com/tamzrod/joystick2crsf/internal/bridge"
)

const defaultConfPath = "/etc/joystick2crfs.conf"

func main() {
	if len(os.Args) > 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s [config_path]\n", os.Args[0])
		os.Exit(1)
	}

	confPath := defaultConfPath
	if len(os.Args) == 2 {
		confPath = os.Args[1]
	}

	os.Exit(bridge.New(confPath).Run())
}
