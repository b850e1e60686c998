// Command convert converts Word documents to JSON records from the
// command line. -in may be a single .docx file or a directory; with a
// directory, every matching document is converted independently.
// Usage: go run ./cmd/convert -in reports/ -out converted/ -report report.xlsx
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"docvert/internal/config"
	"docvert/internal/domain"
	"docvert/internal/export"
	"docvert/internal/reader/docxreader"
	"docvert/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		in          = flag.String("in", "", "input .docx file or directory (required)")
		out         = flag.String("out", "", "output file or directory (defaults next to input)")
		recursive   = flag.Bool("recursive", false, "recurse into subdirectories in folder mode")
		concurrency = flag.Int("concurrency", 0, "parallel conversions in folder mode (0 = config default)")
		report      = flag.String("report", "", "write an XLSX batch report to this path (folder mode)")
	)
	flag.Parse()

	if *in == "" {
		flag.Usage()
		return fmt.Errorf("-in is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *recursive {
		cfg.Convert.Recursive = true
	}
	if *concurrency > 0 {
		cfg.Convert.Concurrency = *concurrency
	}

	svc := service.NewConvertService(docxreader.New(), nil, cfg, nil)
	ctx := context.Background()

	info, err := os.Stat(*in)
	if err != nil {
		return fmt.Errorf("stat %s: %w", *in, err)
	}

	if !info.IsDir() {
		return convertOne(ctx, svc, *in, *out)
	}
	return convertFolder(ctx, svc, *in, *out, *report)
}

func convertOne(ctx context.Context, svc service.ConvertService, in, out string) error {
	if out == "" {
		out = strings.TrimSuffix(in, filepath.Ext(in)) + domain.OutputExt
	}

	res, err := svc.ConvertFile(ctx, in, out)
	if err != nil {
		return err
	}

	fmt.Printf("converted %s -> %s (%d paragraphs, %d fields)\n",
		in, out, res.Metadata.TotalParagraphs, len(res.Content))
	return nil
}

func convertFolder(ctx context.Context, svc service.ConvertService, in, out, report string) error {
	if out == "" {
		out = in
	}

	batch, err := svc.ConvertFolder(ctx, in, out)
	if err != nil {
		return err
	}

	for _, f := range batch.Files {
		switch {
		case f.Skipped:
			fmt.Printf("[-] skipped %s\n", f.Input)
		case f.Err != "":
			fmt.Printf("[x] failed %s: %s\n", f.Input, f.Err)
		default:
			fmt.Printf("[ok] %s -> %s\n", f.Input, f.Output)
		}
	}
	fmt.Printf("\ndone: %d converted, %d failed, %d skipped (of %d matched)\n",
		batch.Stats.Succeeded, batch.Stats.Failed, batch.Stats.Skipped, batch.Stats.Matched)

	if report != "" {
		f, err := os.Create(report)
		if err != nil {
			return fmt.Errorf("create report %s: %w", report, err)
		}
		defer func() { _ = f.Close() }()
		if err := export.WriteBatchXLSX(f, batch); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Printf("report written to %s\n", report)
	}

	return nil
}
