package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"k8s.io/klog/v2"

	"github.com/thekorn/fastfilter-search/textindex"
)

func newCmd_Build() *cli.Command {
	return &cli.Command{
		Name:        "build",
		Description: "Build an index from a line-delimited text corpus and write it to disk",
		ArgsUsage:   "--input-file=<path> --output-file=<path>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input-file",
				Usage:    "Path to a file with one document per line",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "output-file",
				Usage:    "Path to write the built index to",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "language",
				Usage: "Snowball stemmer language",
				Value: textindex.DefaultOptions.Language,
			},
			&cli.StringFlag{
				Name:  "charenc",
				Usage: "character encoding of the corpus",
				Value: textindex.DefaultOptions.CharEnc,
			},
			&cli.Uint64Flag{
				Name:  "estimated-keys",
				Usage: "expected total token count across the corpus; only affects division balance",
				Value: textindex.DefaultOptions.EstimatedKeys,
			},
		},
		Action: func(c *cli.Context) error {
			inputPath := c.String("input-file")
			outputPath := c.String("output-file")

			in, err := os.Open(inputPath)
			if err != nil {
				return cli.Exit(fmt.Errorf("opening input file: %w", err), 1)
			}
			defer in.Close()

			lineCount, err := countLines(inputPath)
			if err != nil {
				return cli.Exit(fmt.Errorf("scanning input file: %w", err), 1)
			}

			ti, err := textindex.New(textindex.Options{
				EstimatedKeys: c.Uint64("estimated-keys"),
				Language:      c.String("language"),
				CharEnc:       c.String("charenc"),
			})
			if err != nil {
				return cli.Exit(fmt.Errorf("creating index: %w", err), 2)
			}

			progress := mpb.New(mpb.WithWidth(64))
			bar := progress.AddBar(int64(lineCount),
				mpb.PrependDecorators(decor.Name("indexing")),
				mpb.AppendDecorators(decor.CountersNoUnit("%d / %d")),
			)

			startedAt := time.Now()
			scanner := bufio.NewScanner(in)
			scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
			var inserted int64
			for scanner.Scan() {
				line := scanner.Text()
				if line == "" {
					bar.Increment()
					continue
				}
				if _, err := ti.Insert(line); err != nil {
					return cli.Exit(fmt.Errorf("inserting line %d: %w", inserted+1, err), 1)
				}
				inserted++
				bar.Increment()
			}
			if err := scanner.Err(); err != nil {
				return cli.Exit(fmt.Errorf("reading input file: %w", err), 1)
			}
			progress.Wait()

			klog.Infof("Inserted %s documents in %s", humanize.Comma(inserted), time.Since(startedAt))

			klog.Info("Building filters...")
			indexStartedAt := time.Now()
			if err := ti.Index(); err != nil {
				return cli.Exit(fmt.Errorf("building filters: %w", err), 1)
			}
			klog.Infof("Built filters in %s", time.Since(indexStartedAt))

			dir := filepath.Dir(outputPath)
			filename := filepath.Base(outputPath)
			if err := ti.Save(dir, filename); err != nil {
				return cli.Exit(fmt.Errorf("saving index: %w", err), 1)
			}

			stat, err := os.Stat(outputPath)
			if err != nil {
				return cli.Exit(fmt.Errorf("stat output file: %w", err), 1)
			}
			klog.Infof("Wrote index to %s (% .2f)", outputPath, decor.SizeB1000(stat.Size()))

			return nil
		},
	}
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	n := 0
	for scanner.Scan() {
		n++
	}
	return n, scanner.Err()
}
