package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/subtrack-dev/subtrack/internal/auditlog"
	"github.com/subtrack-dev/subtrack/internal/model"
	"github.com/subtrack-dev/subtrack/internal/store"
)

func newDetectCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Recompute recurring-charge flags and show detected subscriptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(repoDir)
		},
	}

	cmd.Flags().StringVar(&repoDir, "ledger", ".", "ledger directory")

	return cmd
}

func runDetect(dir string) error {
	p, err := openProject(dir)
	if err != nil {
		return err
	}

	txns, err := store.Load(p.root)
	if err != nil {
		return err
	}

	txns = p.svc.DetectRecurring(txns)

	if err := store.Save(p.root, txns); err != nil {
		return err
	}

	subs := summarizeSubscriptions(txns)
	if len(subs) == 0 {
		fmt.Println("No recurring charges detected.")
	} else {
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Vendor", "Category", "Amount", "Frequency", "Charges"})
		for _, s := range subs {
			table.Append([]string{s.vendor, s.category, s.amount, string(s.frequency), fmt.Sprintf("%d", s.count)})
		}
		table.Render()
	}

	hash, err := p.commit(fmt.Sprintf("detect: %d subscriptions", len(subs)))
	if err != nil {
		return err
	}

	entry := auditlog.Entry{
		Timestamp:  time.Now().UTC(),
		Action:     "detect",
		Details:    fmt.Sprintf("%d subscriptions", len(subs)),
		RowCount:   len(txns),
		CommitHash: hash,
	}
	if err := auditlog.Append(p.root, []auditlog.Entry{entry}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write action log: %v\n", err)
	}

	return nil
}

type subscriptionRow struct {
	vendor    string
	category  string
	amount    string
	frequency model.Frequency
	count     int
}

// summarizeSubscriptions folds flagged transactions into one row per vendor,
// newest charge's amount shown. Input arrives newest first.
func summarizeSubscriptions(txns []model.Transaction) []subscriptionRow {
	index := make(map[string]int)
	var rows []subscriptionRow
	for _, t := range txns {
		if !t.IsSubscription {
			continue
		}
		if i, ok := index[t.Vendor]; ok {
			rows[i].count++
			continue
		}
		index[t.Vendor] = len(rows)
		rows = append(rows, subscriptionRow{
			vendor:    t.Vendor,
			category:  t.Category,
			amount:    t.Amount.StringFixed(2),
			frequency: t.SubscriptionFrequency,
			count:     1,
		})
	}
	return rows
}
