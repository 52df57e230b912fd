package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/scigolib/hdf4/internal/header"
)

// maxConcurrentFiles bounds how many files dumpDDs opens at once, so a
// large argument list doesn't exhaust file descriptors.
const maxConcurrentFiles = 8

func newApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Inspect the Data Descriptor directory of HDF4 files.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "suppress per-file headers when dumping more than one file",
			},
		},
		ArgsUsage: "FILE...",
		Action:    dumpDDs,
	}
}

func dumpDDs(c *cli.Context) error {
	paths := c.Args().Slice()
	if len(paths) == 0 {
		return cli.Exit("no input files", 1)
	}

	results := make([][]header.DDEntry, len(paths))
	group, ctx := errgroup.WithContext(c.Context)
	group.SetLimit(maxConcurrentFiles)

	for i, path := range paths {
		i, path := i, path
		group.Go(func() error {
			entries, err := scanFile(ctx, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = entries
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	multi := len(paths) > 1
	for i, path := range paths {
		if multi && !c.Bool("quiet") {
			fmt.Printf("== %s ==\n", path)
		}
		for _, e := range results[i] {
			fmt.Printf("tag=%-5d ref=%-5d offset=%-10d length=%d\n", e.Tag, e.Ref, e.Offset, e.Length)
		}
	}
	return nil
}

func scanFile(ctx context.Context, path string) ([]header.DDEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	valid, err := header.IsValid(f)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, fmt.Errorf("not an HDF4 file")
	}
	return header.Scan(f)
}
