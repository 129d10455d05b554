package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/subtrack-dev/subtrack/internal/config"
	"github.com/subtrack-dev/subtrack/internal/gitops"
	"github.com/subtrack-dev/subtrack/internal/id"
	"github.com/subtrack-dev/subtrack/internal/ledger"
	"github.com/subtrack-dev/subtrack/internal/logger"
)

// configFile is the project configuration inside the ledger directory.
const configFile = "subtrack.yaml"

// importDir is the drop-off subdirectory for statement CSVs.
const importDir = "import"

// processedDir is where imported CSVs are moved afterwards.
const processedDir = "import/processed"

// project is a ledger directory plus the service built from its config.
type project struct {
	root string
	cfg  *config.Config
	svc  *ledger.Service
}

// openProject loads the config under dir, falling back to defaults when the
// directory was never initialized.
func openProject(dir string) (*project, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(root, configFile))
	if errors.Is(err, fs.ErrNotExist) {
		cfg = config.Default()
	} else if err != nil {
		return nil, err
	}

	logger.Init(cfg.Log.Level)

	return &project{
		root: root,
		cfg:  cfg,
		svc:  ledger.New(cfg.Tables(), cfg.Enrich, cfg.Recurring, id.Random()),
	}, nil
}

// commit auto-commits the ledger directory when configured, returning the
// short hash or "" when disabled or unchanged.
func (p *project) commit(message string) (string, error) {
	if !p.cfg.Git.AutoCommit || !gitops.IsRepo(p.root) {
		return "", nil
	}
	return gitops.CommitAll(p.root, message, p.cfg.Git.AuthorName, p.cfg.Git.AuthorEmail)
}

// scanImportDir returns the CSV files waiting in <root>/import/.
func scanImportDir(root string) ([]string, error) {
	dir := filepath.Join(root, importDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

// markProcessed moves a file from import/ to import/processed/.
func markProcessed(root, fileName string) error {
	src := filepath.Join(root, importDir, fileName)
	dstDir := filepath.Join(root, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
