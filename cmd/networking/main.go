package main

import (
	"github.com/keboola/go-networking/cmd/networking/app/cmd"
)

func main() {
	cmd.Execute()
}
