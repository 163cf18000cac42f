package main

import (
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ukane-philemon/srms/config"
	"github.com/ukane-philemon/srms/internal/cli"
	"github.com/ukane-philemon/srms/internal/export"
	"github.com/ukane-philemon/srms/internal/export/pdf"
	"github.com/ukane-philemon/srms/internal/ops"
	"github.com/ukane-philemon/srms/internal/record/csvfile"
)

func main() {
	var noPDF bool
	flag.BoolVar(&noPDF, "no-pdf", false, "Disable the PDF rendering capability")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config.Load error: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Fatalf("invalid log level %q: %v", cfg.LogLevel, err)
	}
	logrus.SetLevel(logLevel)

	// An unreadable backing file is the one unrecoverable failure; every
	// error after startup returns to the menu.
	store, err := csvfile.New(csvfile.Config{
		Path:   cfg.DataFile,
		Strict: cfg.StrictLoad,
	})
	if err != nil {
		logrus.Fatalf("csvfile.New error: %v", err)
	}

	operations, err := ops.New(store)
	if err != nil {
		logrus.Fatalf("ops.New error: %v", err)
	}

	// The PDF renderer is an optional capability; without it the export
	// menu entry reports the feature as unavailable.
	var renderer export.Renderer
	if !noPDF {
		renderer = pdf.New()
	}

	shell, err := cli.New(cli.Config{
		Operations: operations,
		Renderer:   renderer,
		ExportFile: cfg.ExportFile,
		ReportFile: cfg.ReportFile,
	}, os.Stdin, os.Stdout)
	if err != nil {
		logrus.Fatalf("cli.New error: %v", err)
	}

	shell.Run()
}
