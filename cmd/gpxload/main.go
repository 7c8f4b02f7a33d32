// Command gpxload loads the trackpoints of a GPX file and optionally stores them.
//
//	gpxload [-config file] [-db file] [-quiet] <input gpx> <output gpx>
//
// Writing the output file is not supported yet; the argument is accepted and
// reported.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jengzang/gpx-records/internal/config"
	"github.com/jengzang/gpx-records/internal/database"
	"github.com/jengzang/gpx-records/internal/gpx"
	"github.com/jengzang/gpx-records/internal/repository"
	"github.com/jengzang/gpx-records/internal/service"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	prog := args[0]
	flags := flag.NewFlagSet(prog, flag.ContinueOnError)
	flags.SetOutput(stderr)
	var (
		configFlag = flags.String("config", "", "Path to config file")
		dbFlag     = flags.String("db", "", "Store the trackpoints in this sqlite database")
		quietFlag  = flags.Bool("quiet", false, "Do not print per-track progress")
	)
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [options] <input gpx> <output gpx>\n", prog)
		flags.PrintDefaults()
	}

	if err := flags.Parse(args[1:]); err != nil {
		return 1
	}
	if flags.NArg() != 2 {
		flags.Usage()
		return 1
	}
	input, output := flags.Arg(0), flags.Arg(1)

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}
	logger := cfg.NewLogger()

	loadOpts, err := service.LoadOptions(cfg.GPX)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	if !*quietFlag {
		loadOpts = append(loadOpts, gpx.WithProgress(consoleProgress(stdout)))
	}

	if *dbFlag == "" {
		if _, err := gpx.Load(input, loadOpts...); err != nil {
			fmt.Fprintf(stderr, "Cannot read file '%s': %v\n", input, err)
			return 1
		}
	} else {
		conn, err := database.Open(database.Config{Path: *dbFlag})
		if err != nil {
			fmt.Fprintf(stderr, "Error opening database: %v\n", err)
			return 1
		}
		defer conn.Close()

		svc := service.NewImportService(repository.NewImportRepository(conn), logger, 1, loadOpts...)
		imports, err := svc.ImportFiles(context.Background(), []string{input})
		if err != nil {
			fmt.Fprintf(stderr, "Cannot read file '%s': %v\n", input, err)
			return 1
		}
		fmt.Fprintf(stdout, "stored import %s in %s\n", imports[0].ID, *dbFlag)
	}

	logger.Warn("writing gpx output is not supported, no file written", "output", output)
	return 0
}

// consoleProgress prints "reading track: <name> ... done" lines and the final
// summary.
func consoleProgress(w io.Writer) func(gpx.ProgressEvent) {
	return func(ev gpx.ProgressEvent) {
		switch ev.Kind {
		case gpx.TrackStarted:
			fmt.Fprintf(w, "reading track: %s ... ", ev.Name)
		case gpx.TrackFinished:
			fmt.Fprintln(w, "done")
		case gpx.LoadFinished:
			fmt.Fprintf(w, "found %d tracks, containing %d trackpoints\n", ev.Tracks, ev.Points)
		}
	}
}
