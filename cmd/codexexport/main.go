// Command codexexport loads the catalog documents and writes items, recipes and,
// given an inventory file, the craftable recipes to an .xlsx workbook or .csv files.
//
// Usage:
//
//	codexexport --local ./data --out catalog.xlsx
//	codexexport --remote https://example.org/codex --out catalog.csv --inventory save.json
//	codexexport --local ./data --out catalog.xlsx --inventory inventory.html --sort value --order desc
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/shard-legends/codex-service/internal/catalog"
	"github.com/shard-legends/codex-service/internal/inventory"
	"github.com/shard-legends/codex-service/internal/loader"
	"github.com/shard-legends/codex-service/internal/models"
	"github.com/shard-legends/codex-service/internal/ranking"
	"github.com/shard-legends/codex-service/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	var (
		outPath   string
		invPath   string
		remoteURL string
		localDir  string
		sortKey   string
		order     string
		logLevel  string
		timeout   time.Duration
	)
	flag.StringVar(&outPath, "out", "", "Output file path (.csv or .xlsx) (required)")
	flag.StringVar(&invPath, "inventory", "", "Save file (.json) or saved inventory page (.html) to check craftability against")
	flag.StringVar(&remoteURL, "remote", os.Getenv("CODEX_SVC_DATA_REMOTE_URL"), "Base URL of the remote documents")
	flag.StringVar(&localDir, "local", os.Getenv("CODEX_SVC_DATA_LOCAL_DIR"), "Directory with local fallback documents")
	flag.StringVar(&sortKey, "sort", "", "Item sort key ("+strings.Join(ranking.ItemKeys(), ", ")+")")
	flag.StringVar(&order, "order", "asc", "Item sort order (asc or desc)")
	flag.StringVar(&logLevel, "log-level", "warn", "Log level")
	flag.DurationVar(&timeout, "timeout", 60*time.Second, "Overall load timeout")
	flag.Parse()

	if outPath == "" || (remoteURL == "" && localDir == "") {
		flag.Usage()
		os.Exit(2)
	}

	if err := logger.Init(logLevel, "console"); err != nil {
		fatal(err)
	}
	defer logger.Sync()

	var cmp ranking.Comparator[models.Item]
	if sortKey != "" {
		desc, err := models.ValidateOrder(order)
		if err != nil {
			fatal(err)
		}
		if cmp, err = ranking.LookupItem(sortKey, desc); err != nil {
			fatal(err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	ds, err := loader.New(loader.Config{
		RemoteURL:      remoteURL,
		LocalDir:       localDir,
		RequestTimeout: timeout,
	}, logger.Get()).Load(ctx)
	if err != nil {
		fatal(err)
	}

	cat := catalog.New(catalog.WithImages(ds.Items, ds.Wiki), ds.Recipes)
	tables := []table{itemsTable(cat, cmp), recipesTable(cat)}

	if invPath != "" {
		stacks, err := readInventory(invPath)
		if err != nil {
			fatal(err)
		}
		snap := inventory.Build(cat, stacks)
		if snap.Skipped > 0 {
			logger.Warn("Skipped malformed inventory stacks", zap.Int("skipped", snap.Skipped))
		}
		tables = append(tables, craftableTable(cat, snap))
	}

	switch strings.ToLower(filepath.Ext(outPath)) {
	case ".xlsx":
		err = writeXLSX(outPath, tables)
		if err == nil {
			fmt.Printf("OK: %d sheets -> %s\n", len(tables), outPath)
		}
	case ".csv":
		var written []string
		written, err = writeCSV(outPath, tables)
		if err == nil {
			fmt.Printf("OK: %s\n", strings.Join(written, ", "))
		}
	default:
		err = errors.New("out must end with .csv or .xlsx")
	}
	if err != nil {
		fatal(err)
	}
}

// readInventory extracts raw stacks from a save file or a saved inventory page
func readInventory(path string) ([]models.RawStack, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return parseInventory(f, filepath.Ext(path))
}

func parseInventory(r io.Reader, ext string) ([]models.RawStack, error) {
	switch strings.ToLower(ext) {
	case ".html", ".htm":
		return inventory.ParsePageHTML(r, inventory.DefaultSelectors)
	default:
		return inventory.ParseSaveFile(r)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(1)
}
