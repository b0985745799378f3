// Command vector runs a Dragonfly server with the vector feature enabled.
package main

import (
	"flag"
	"log"
	"log/slog"

	"github.com/df-mc/dragonfly/server"
	"github.com/df-mc/dragonfly/server/cmd"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/oriumgames/vector"
)

func main() {
	flag.Parse()
	slog.SetLogLoggerLevel(levelFlag.value)
	if *logFileFlag != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   *logFileFlag,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
		})
	}

	conf, err := server.DefaultConfig().Config(slog.Default())
	if err != nil {
		log.Fatal(err)
	}
	srv := conf.New()
	srv.CloseOnProgramEnd()

	pl := vector.NewBuilder().
		ConfigPath(*configFlag).
		Operators(opsFlag.names...).
		Init()
	if err := pl.Enable(); err != nil {
		log.Fatalf("Failed to enable vector: %s", err)
	}
	defer pl.Close()
	cmd.Register(pl.Command())

	srv.Listen()
	for p := range srv.Accept() {
		p.Handle(pl.NewHandler())
	}
}
