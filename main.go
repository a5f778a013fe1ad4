/*
gulag opens a window and draws a full-screen gradient quad with the
engine package until the window is closed or the process is signalled.
*/
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/gulag/engine"
	"github.com/spaghettifunk/gulag/engine/core"
	"github.com/spaghettifunk/gulag/engine/platform/desktop"
	"github.com/spaghettifunk/gulag/testbed"
	"github.com/urfave/cli/v2"
)

var ConfigFlag = &cli.StringFlag{
	Name:    "config",
	Aliases: []string{"c"},
	Usage:   "path to a TOML application config",
	Value:   engine.DefaultConfigFile,
}

// newApp builds the command line. run receives the loaded config.
func newApp(run func(config *engine.ApplicationConfig) error) *cli.App {
	return &cli.App{
		Name:      "gulag",
		Usage:     "draw a gradient quad with OpenGL 4.4",
		ArgsUsage: " ",
		Flags:     []cli.Flag{ConfigFlag},
		Action: func(ctx *cli.Context) error {
			if ctx.NArg() > 0 {
				return fmt.Errorf("unexpected arguments: %v", ctx.Args().Slice())
			}
			config, err := engine.LoadConfig(ctx.String(ConfigFlag.Name), testbed.Config())
			if err != nil {
				return err
			}
			return run(config)
		},
	}
}

func runHarness(config *engine.ApplicationConfig) error {
	p := desktop.Platform()
	defer p.Terminate()

	e, err := engine.New(testbed.NewTestGame(config).Game, p)
	if err != nil {
		return err
	}

	if err := e.Initialize(); err != nil {
		return err
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer signal.Stop(sigCh)

	// the frame loop owns the window, so the signal only flags a quit
	go func() {
		sig, ok := <-sigCh
		if !ok {
			return
		}
		core.LogInfo("received %s, shutting down", sig)
		e.Quit()
	}()

	runErr := e.Run()
	if err := e.Shutdown(); err != nil {
		core.LogError("%s", err)
	}
	return runErr
}

func main() {
	if err := newApp(runHarness).Run(os.Args); err != nil {
		core.LogFatal("%s", err)
	}
}
