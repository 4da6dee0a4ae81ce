package main

import (
	"os"

	"github.com/cek/rclonebb/cmd/rclonebb/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
