package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/subtrack-dev/subtrack/internal/auditlog"
	"github.com/subtrack-dev/subtrack/internal/ledger"
	"github.com/subtrack-dev/subtrack/internal/store"
)

func newVendorsCommand() *cobra.Command {
	var repoDir string
	var merge bool
	var minVariants int

	cmd := &cobra.Command{
		Use:   "vendors",
		Short: "List or merge vendor spelling variants",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVendors(repoDir, merge, minVariants)
		},
	}

	cmd.Flags().StringVar(&repoDir, "ledger", ".", "ledger directory")
	cmd.Flags().BoolVar(&merge, "merge", false, "rewrite variants to one canonical vendor")
	cmd.Flags().IntVar(&minVariants, "min-variants", 2, "minimum spellings before a group merges")

	return cmd
}

func runVendors(dir string, merge bool, minVariants int) error {
	p, err := openProject(dir)
	if err != nil {
		return err
	}

	txns, err := store.Load(p.root)
	if err != nil {
		return err
	}

	if !merge {
		groups := ledger.FindVendorVariants(txns)
		if len(groups) == 0 {
			fmt.Println("No vendor variants found.")
			return nil
		}
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Merchant", "Variants", "Transactions"})
		for _, g := range groups {
			table.Append([]string{g.NormalizedName, strings.Join(g.Variants, ", "), fmt.Sprintf("%d", g.TransactionCount)})
		}
		table.Render()
		return nil
	}

	merged, merges := ledger.AutoMergeVendors(txns, minVariants)
	if len(merges) == 0 {
		fmt.Println("Nothing to merge.")
		return nil
	}

	if err := store.Save(p.root, merged); err != nil {
		return err
	}

	for _, m := range merges {
		fmt.Printf("Merged %s -> %q\n", strings.Join(m.Variants, ", "), m.Canonical)
	}

	hash, err := p.commit(fmt.Sprintf("vendors: merged %d groups", len(merges)))
	if err != nil {
		return err
	}

	entry := auditlog.Entry{
		Timestamp:  time.Now().UTC(),
		Action:     "merge-vendors",
		Details:    fmt.Sprintf("%d groups", len(merges)),
		RowCount:   len(merged),
		CommitHash: hash,
	}
	if err := auditlog.Append(p.root, []auditlog.Entry{entry}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write action log: %v\n", err)
	}

	return nil
}
