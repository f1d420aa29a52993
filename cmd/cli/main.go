package main

import (
	"context"
	"log"
	"os"

	"github.com/aturkov/scorekeep/internal/admin"
	"github.com/aturkov/scorekeep/internal/buildinfo"
	"github.com/aturkov/scorekeep/internal/flagx"
	"github.com/aturkov/scorekeep/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := admin.NewApp(cfg)

	if err := app.Run(ctx, flagx.PositionalArgs(os.Args[1:])); err != nil {
		log.Fatalf("%v", err)
	}

}
