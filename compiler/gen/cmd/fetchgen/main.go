// fetchgen generates per-entity constant packages from a YAML schema.
//
// Run: go run ./compiler/gen/cmd/fetchgen -schema fetch.yaml -target ./fetch
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"

	"github.com/syssam/fetchgraph/compiler/gen"
	"github.com/syssam/fetchgraph/schema"
)

func main() {
	var (
		schemaPath = flag.String("schema", "fetch.yaml", "path to the YAML schema document")
		target     = flag.String("target", "", "target directory for generated packages")
		workers    = flag.Int("workers", 0, "number of parallel workers (0 = GOMAXPROCS)")
		watch      = flag.Bool("watch", false, "re-generate when the schema file changes")
	)
	flag.Parse()
	if *target == "" {
		fmt.Fprintln(os.Stderr, "fetchgen: -target is required")
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run := func() error {
		f, err := schema.ParseFile(*schemaPath)
		if err != nil {
			return err
		}
		return gen.NewGenerator(f, *target).WithWorkers(*workers).Generate(ctx)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fetchgen: %v\n", err)
		if !*watch {
			os.Exit(1)
		}
	}
	if !*watch {
		return
	}
	if err := watchSchema(ctx, *schemaPath, run); err != nil {
		fmt.Fprintf(os.Stderr, "fetchgen: %v\n", err)
		os.Exit(1)
	}
}

// watchSchema re-runs the generator whenever the schema file is written.
// The parent directory is watched because editors replace files on save.
func watchSchema(ctx context.Context, path string, run func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "fetchgen: watching %s\n", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if err := run(); err != nil {
				fmt.Fprintf(os.Stderr, "fetchgen: %v\n", err)
				continue
			}
			fmt.Fprintf(os.Stderr, "fetchgen: regenerated from %s\n", path)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "fetchgen: watch: %v\n", err)
		}
	}
}
