/*
Demo application that draws a scene of shapes every frame through the
engine package, either in a window or headless.
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/anima-draw/engine"
	"github.com/spaghettifunk/anima-draw/engine/core"
	"github.com/spaghettifunk/anima-draw/testbed"
)

func main() {
	headless := flag.Bool("headless", false, "run without a window")
	configPath := flag.String("config", "draw.toml", "draw configuration file")
	watch := flag.Bool("watch", false, "reload the configuration file when it changes")
	frames := flag.Uint64("frames", 0, "stop after this many frames (0 runs until closed)")
	logLevel := flag.String("log", "info", "log level")
	flag.Parse()

	level, err := core.ParseLogLevel(*logLevel)
	if err != nil {
		core.LogFatal("invalid log level %q: %s", *logLevel, err)
		os.Exit(1)
	}

	tb := testbed.NewTestGame(testbed.Options{
		Headless:    *headless,
		ConfigPath:  *configPath,
		WatchConfig: *watch,
		MaxFrames:   *frames,
		LogLevel:    level,
	})

	e, err := engine.New(tb.Game, nil)
	if err != nil {
		panic(err)
	}

	if err := e.Initialize(); err != nil {
		panic(err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	go func() {
		<-sigCh
		e.Stop()
	}()

	runErr := e.Run()
	if err := e.Shutdown(); err != nil {
		core.LogError("shutdown: %s", err)
	}
	if runErr != nil {
		panic(runErr)
	}
}
