package main

import (
	"os"

	"pickmany/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
