package intake

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"babette/internal/config"
	"babette/internal/feed"
	gmailconnector "babette/internal/intake/gmail"
	imapconnector "babette/internal/intake/imap"
	"babette/internal/pipeline"
	"babette/internal/storage"
	"babette/internal/vendors"
)

// Listener runs the full intake loop: fetch mail, process the stored feeds
// and drop a review workbook per vendor.
type Listener struct {
	db  *storage.DB
	cfg config.Config
}

func NewListener(db *storage.DB, cfg config.Config) *Listener {
	return &Listener{db: db, cfg: cfg}
}

func (l *Listener) Run(ctx context.Context) error {
	for {
		if err := l.runCycle(); err != nil {
			fmt.Printf("intake cycle error: %v\n", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Duration(l.cfg.IntakeIntervalSec) * time.Second):
		}
	}
}

func (l *Listener) runCycle() error {
	provider := strings.ToLower(strings.TrimSpace(l.cfg.IntakeProvider))
	connector, err := l.makeConnector(provider)
	if err != nil {
		return err
	}

	fetcher := NewFetchService(l.db, l.cfg.RawIntakeDir, connector)
	fetchResult, err := fetcher.FetchAndStore(l.cfg.IntakeLabel, l.cfg.IntakeFetchMax)
	if err != nil {
		return err
	}

	processor := feed.NewService(l.db, l.cfg)
	processed, err := processor.ProcessPending(l.cfg.IntakeBatch)
	if err != nil {
		return err
	}

	if l.cfg.IntakeAutoExport && processed > 0 {
		if err := l.exportProcessed(); err != nil {
			return err
		}
	}

	fmt.Printf("intake cycle done provider=%s fetched=%d stored=%d skipped=%d processed=%d\n",
		provider, fetchResult.Fetched, fetchResult.Stored, fetchResult.Skipped, processed)
	return nil
}

// exportProcessed writes one review workbook per vendor that has newly
// processed feeds.
func (l *Listener) exportProcessed() error {
	feeds, err := l.db.ListFeedsByStatus("processed", 200)
	if err != nil {
		return err
	}

	byVendor := map[string][]int{}
	for _, f := range feeds {
		byVendor[f.Vendor] = append(byVendor[f.Vendor], f.ID)
	}

	for vendorName, feedIDs := range byVendor {
		if _, err := vendors.Lookup(vendorName); err != nil {
			continue
		}
		products, err := l.db.LoadProducts(vendorName)
		if err != nil {
			return err
		}
		if len(products) == 0 {
			continue
		}

		filename := fmt.Sprintf("%s_%s.xlsx", vendorName, time.Now().UTC().Format("20060102_150405"))
		outputPath := filepath.Join(l.cfg.OutputDir, "intake", filename)
		if err := pipeline.ExportProductsToXLSX(products, nil, outputPath); err != nil {
			return err
		}
		for _, id := range feedIDs {
			_ = l.db.UpdateFeedStatus(id, "exported")
		}
		fmt.Printf("intake: exported %d products for %s to %s\n", len(products), vendorName, outputPath)
	}
	return nil
}

func (l *Listener) makeConnector(provider string) (MailConnector, error) {
	switch provider {
	case "gmail":
		return gmailconnector.NewConnector(l.cfg)
	case "imap":
		return imapconnector.NewConnector(l.cfg)
	default:
		return nil, fmt.Errorf("unsupported intake provider: %s", provider)
	}
}
