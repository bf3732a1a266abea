package main

import (
	"context"

	"github.com/scott-cotton/cli"
	"github.com/signadot/nestmap"
)

func main() {
	nestmap.SetLogger(theLog)
	cli.MainContext(context.Background(), MainCommand())
}
