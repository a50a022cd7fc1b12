package main

import (
	"os"

	"github.com/klabast/wb-services/feriados/internal/commands"
)

func main() {
	// cobra already printed the error
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
