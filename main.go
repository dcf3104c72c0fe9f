package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/insightdelivered/ocr-transaction-parser/internal/annotation"
	"github.com/insightdelivered/ocr-transaction-parser/internal/api"
	"github.com/insightdelivered/ocr-transaction-parser/internal/config"
	"github.com/insightdelivered/ocr-transaction-parser/internal/extractor"
	"github.com/insightdelivered/ocr-transaction-parser/internal/logger"
	"github.com/insightdelivered/ocr-transaction-parser/internal/metrics"
	"github.com/insightdelivered/ocr-transaction-parser/internal/models"
	"github.com/insightdelivered/ocr-transaction-parser/internal/parser"
	"github.com/insightdelivered/ocr-transaction-parser/internal/source"
	"github.com/insightdelivered/ocr-transaction-parser/internal/validator"
	"github.com/insightdelivered/ocr-transaction-parser/internal/writer"
)

const version = "1.0.0"

// options controls where processFile writes its results.
type options struct {
	Output string // overrides <stem>_parsed.json when set
	CSV    bool   // also write <stem>_amounts.csv
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is the whole CLI: it returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ocr-transaction-parser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	outputFlag := fs.String("output", "", "Output JSON path (defaults to <input>_parsed.json)")
	csvFlag := fs.Bool("csv", false, "Also write amounts to <input>_amounts.csv (default from output.csv)")
	serveFlag := fs.Bool("serve", false, "Run the HTTP API instead of parsing a file")
	versionFlag := fs.Bool("version", false, "Print version and exit")
	helpFlag := fs.Bool("help", false, "Show usage help")

	fs.Usage = func() {
		fmt.Fprintf(stderr, `OCR Transaction Parser
by Insight Delivered

Extracts amounts, dates, merchant, card and reference details from
Cloud Vision annotations of bank notifications and receipts.

Usage:
  ocr-transaction-parser [flags] <annotations.json>

Flags:
`)
		fs.PrintDefaults()
		fmt.Fprintf(stderr, `
Examples:
  # Parse a Vision annotate response
  ocr-transaction-parser receipt.json

  # Parse batch output stored in Cloud Storage
  ocr-transaction-parser gs://my-bucket/vision/output-1-to-1.json

  # Recognize a local image or PDF and write a CSV of amounts
  ocr-transaction-parser --csv receipt.png

  # Serve the API on server.addr
  ocr-transaction-parser --serve
`)
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	if *versionFlag {
		fmt.Fprintf(stdout, "ocr-transaction-parser v%s\n", version)
		return 0
	}

	if *helpFlag {
		fs.Usage()
		return 0
	}

	if !*serveFlag {
		switch fs.NArg() {
		case 1:
		case 0:
			fs.Usage()
			return 1
		default:
			fmt.Fprintf(stderr, "Error: expected one input file, got %d\n\n", fs.NArg())
			fs.Usage()
			return 1
		}
	}

	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
		return 1
	}
	log := logger.NewWithWriter(stderr, cfg.Log.Level, cfg.Log.Format)

	p := parser.New(parser.WithTables(cfg.Tables()))

	if *serveFlag {
		if err := serve(cfg.Server.Addr, p, log); err != nil {
			log.Error().Err(err).Msg("Server stopped")
			return 1
		}
		return 0
	}

	opts := options{Output: *outputFlag, CSV: cfg.Output.CSV}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "csv" {
			opts.CSV = *csvFlag
		}
	})

	ctx := logger.WithContext(context.Background(), log)
	if err := processFile(ctx, p, fs.Arg(0), opts, stdout); err != nil {
		fmt.Fprintf(stderr, "Error parsing transaction: %v\n", err)
		return 1
	}
	return 0
}

// processFile parses one input and writes the JSON result next to it.
// All output bytes are rendered before anything is written.
func processFile(ctx context.Context, p *parser.Parser, inputPath string, opts options, stdout io.Writer) error {
	log := logger.FromContext(ctx)

	loader := &source.Loader{}
	if source.IsRemote(inputPath) {
		store, err := source.NewGCSStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()
		loader.Remote = store
	}

	rec, err := recognize(ctx, loader, inputPath)
	if err != nil {
		return err
	}

	txn := p.Parse(rec)
	doc := models.ParsedDocument{Transaction: txn, Validation: validator.Validate(txn)}
	metrics.RecordDocument(doc)

	log.Debug().
		Str("input", inputPath).
		Int("amounts", len(txn.Amounts)).
		Strs("banks", txn.Banks).
		Msg("Parsed document")

	data, err := writer.MarshalDocument(doc)
	if err != nil {
		return err
	}
	var csvData bytes.Buffer
	if opts.CSV {
		if err := (&writer.CSVWriter{IncludeHeader: true}).Write(&csvData, txn); err != nil {
			return err
		}
	}

	outputPath := opts.Output
	if outputPath == "" {
		outputPath = writer.OutputPath(inputPath, "_parsed.json")
	}
	if err := loader.Write(ctx, outputPath, data, "application/json"); err != nil {
		return err
	}

	csvPath := writer.OutputPath(inputPath, "_amounts.csv")
	if opts.CSV {
		if err := loader.Write(ctx, csvPath, csvData.Bytes(), "text/csv"); err != nil {
			if rmErr := loader.Remove(ctx, outputPath); rmErr != nil {
				log.Warn().Err(rmErr).Str("path", outputPath).Msg("Could not remove partial output")
			}
			return err
		}
	}

	if err := writer.WriteReport(stdout, doc); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	fmt.Fprintf(stdout, "\nParsed data saved to: %s\n", outputPath)
	if opts.CSV {
		fmt.Fprintf(stdout, "Amounts CSV saved to: %s\n", csvPath)
	}

	return nil
}

// recognize turns the input into a RecognitionResult. PDFs and images
// are read through local tools and must therefore be local paths.
func recognize(ctx context.Context, loader *source.Loader, inputPath string) (models.RecognitionResult, error) {
	kind := source.KindOf(inputPath)
	if kind != source.KindAnnotation && source.IsRemote(inputPath) {
		return models.RecognitionResult{}, fmt.Errorf("%w: %s must be a local file", source.ErrUnsupportedInput, inputPath)
	}

	switch kind {
	case source.KindPDF:
		return extractor.FromPDF(inputPath)
	case source.KindImage:
		return extractor.FromImage(inputPath)
	}

	data, err := loader.Read(ctx, inputPath)
	if err != nil {
		return models.RecognitionResult{}, err
	}
	rec, err := annotation.Decode(data)
	if err != nil {
		return models.RecognitionResult{}, fmt.Errorf("%s: %w", inputPath, err)
	}
	return rec, nil
}

// serve runs the HTTP API until SIGINT or SIGTERM.
func serve(addr string, p *parser.Parser, log zerolog.Logger) error {
	app := api.NewHandler(p, log, version).NewApp()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("Starting HTTP server")
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
