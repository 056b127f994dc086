package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/kario-app/taskfilter/cmd"
	"github.com/kario-app/taskfilter/log"
)

type CLI struct {
	Debug bool `short:"d" long:"debug" env:"DEBUG" description:"Log debug messages."`

	Server cmd.Server `command:"server" description:"Run the server (rest + scheduled catalog sync)."`
	Parse  cmd.Parse  `command:"parse" description:"Parse a date or a date range, e.g. 'nov 10 - nov 22'."`
	Sync   cmd.Sync   `command:"sync" description:"Rebuild the tag catalogs on a running server."`
	Backup cmd.Backup `command:"backup" description:"Back up the bolt store of a running server."`
}

func main() {
	// Env-backed flags may come from .env, so it is loaded before parsing.
	envErr := godotenv.Load()

	cli := &CLI{}
	parser := flags.NewParser(cli, flags.Default)
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		log.SetDebug(cli.Debug)
		if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
			log.Printf("[WARN] cannot load .env: %v", envErr)
		}

		if cmd != nil {
			return cmd.Execute(args)
		}
		return nil
	}

	if _, err := parser.Parse(); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode is 0 for --help, which go-flags reports as an error.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var flagsErr *flags.Error
	if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
		return 0
	}
	return 1
}
