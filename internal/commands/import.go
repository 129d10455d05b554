package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/subtrack-dev/subtrack/internal/auditlog"
	"github.com/subtrack-dev/subtrack/internal/ledger"
	"github.com/subtrack-dev/subtrack/internal/logger"
	"github.com/subtrack-dev/subtrack/internal/store"
)

func newImportCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Parse statement CSVs into the ledger",
		Long: "Parses the given CSV files (or everything waiting in import/), merges them\n" +
			"with the stored ledger, and recomputes recurring-charge flags over the union.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(repoDir, args)
		},
	}

	cmd.Flags().StringVar(&repoDir, "ledger", ".", "ledger directory")

	return cmd
}

func runImport(dir string, files []string) error {
	p, err := openProject(dir)
	if err != nil {
		return err
	}

	fromImportDir := len(files) == 0
	if fromImportDir {
		if files, err = scanImportDir(p.root); err != nil {
			return err
		}
	}
	if len(files) == 0 {
		fmt.Println("Nothing to import.")
		return nil
	}

	texts := make([]string, len(files))
	for i, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		texts[i] = string(data)
	}

	parsed := p.svc.ParseFiles(texts, p.cfg.VendorCategories)
	logger.Default().Info("parsed statement files",
		"files", len(files), "transactions", len(parsed))

	existing, err := store.Load(p.root)
	if err != nil {
		return err
	}

	combined := ledger.Combine(existing, parsed)
	combined = p.svc.DetectRecurring(combined)

	if err := store.Save(p.root, combined); err != nil {
		return err
	}

	if fromImportDir {
		for _, path := range files {
			if err := markProcessed(p.root, filepath.Base(path)); err != nil {
				return err
			}
		}
	}

	hash, err := p.commit(fmt.Sprintf("import: %d files, %d transactions", len(files), len(combined)))
	if err != nil {
		return err
	}

	entry := auditlog.Entry{
		Timestamp:  time.Now().UTC(),
		Action:     "import",
		Details:    fmt.Sprintf("%d files", len(files)),
		RowCount:   len(combined),
		CommitHash: hash,
	}
	if err := auditlog.Append(p.root, []auditlog.Entry{entry}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write action log: %v\n", err)
	}

	fmt.Printf("Imported %d files, ledger now holds %d transactions\n", len(files), len(combined))
	return nil
}
