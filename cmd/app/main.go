package main

import (
	"os"

	"github.com/zorofrizzy/breatheBack/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		os.Exit(1)
	}
}
