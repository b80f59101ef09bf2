// Package feed drives full runs: locate the vendor, route the file to the
// right spec, push it through the pipeline and persist the outcome.
package feed

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"babette/internal"
	"babette/internal/config"
	"babette/internal/pipeline"
	"babette/internal/reader"
	"babette/internal/storage"
	"babette/internal/vendors"
)

type Service struct {
	db     *storage.DB
	cfg    config.Config
	engine *pipeline.Engine
}

func NewService(db *storage.DB, cfg config.Config) *Service {
	vocabulary, err := pipeline.LoadVocabulary(cfg.VocabularyPath)
	if err != nil {
		// Category matching is an enrichment; a missing vocabulary file
		// must not block feed processing.
		fmt.Printf("category vocabulary unavailable: %v\n", err)
		vocabulary = nil
	}
	return &Service{db: db, cfg: cfg, engine: pipeline.NewEngine(cfg.DefaultMarkup, vocabulary)}
}

// Engine exposes the configured engine for one-shot CLI runs.
func (s *Service) Engine() *pipeline.Engine { return s.engine }

type ProcessResult struct {
	FeedID   int
	Vendor   string
	Kind     internal.FeedKind
	Products []*internal.Product
	Warnings []internal.Warning
}

// ProcessFile registers a file as a feed and processes it. The CLI entry
// point for manual uploads.
func (s *Service) ProcessFile(vendorName, path string) (ProcessResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ProcessResult{}, err
	}

	vendor, err := vendors.Lookup(vendorName)
	if err != nil {
		return ProcessResult{}, err
	}

	kind := InferKind(vendor, filepath.Base(path))
	hash := contentHash(raw)
	feedRow, err := s.db.UpsertFeed(vendor.Name, string(kind), filepath.Base(path), "",
		time.Now().UTC().Format(time.RFC3339), hash, path, "pending")
	if err != nil {
		return ProcessResult{}, err
	}

	return s.ProcessFeed(feedRow)
}

// ProcessPending processes stored feeds in intake order.
func (s *Service) ProcessPending(limit int) (int, error) {
	pending, err := s.db.ListFeedsByStatus("pending", limit)
	if err != nil {
		return 0, err
	}
	processed := 0
	for _, feedRow := range pending {
		if _, err := s.ProcessFeed(feedRow); err != nil {
			// A broken file must not wedge the queue behind it.
			fmt.Printf("feed %d (%s) failed: %v\n", feedRow.ID, feedRow.Filename, err)
			_ = s.db.UpdateFeedStatus(feedRow.ID, "failed")
			continue
		}
		processed++
	}
	return processed, nil
}

func (s *Service) ProcessFeed(feedRow internal.FeedRow) (ProcessResult, error) {
	start := time.Now()

	raw, err := os.ReadFile(feedRow.RawRef)
	if err != nil {
		return ProcessResult{}, err
	}
	vendor, err := vendors.Lookup(feedRow.Vendor)
	if err != nil {
		return ProcessResult{}, err
	}

	var result ProcessResult
	if strings.HasSuffix(strings.ToLower(feedRow.Filename), ".pdf") {
		result, err = s.processInvoice(vendor, feedRow, raw)
	} else {
		result, err = s.processRows(vendor, feedRow, raw)
	}
	if err != nil {
		return ProcessResult{}, err
	}

	result.FeedID = feedRow.ID
	if err := s.persist(feedRow, vendor, result); err != nil {
		return ProcessResult{}, err
	}

	_ = s.db.InsertRun(traceID(), feedRow.ID,
		map[string]float64{"totalMs": float64(time.Since(start).Milliseconds())},
		map[string]int{"products": len(result.Products), "warnings": len(result.Warnings)})

	return result, nil
}

func (s *Service) processRows(vendor *vendors.Vendor, feedRow internal.FeedRow, raw []byte) (ProcessResult, error) {
	spec, rows, err := vendors.Detect(vendor, raw, feedRow.Filename)
	if err != nil {
		return ProcessResult{}, err
	}

	items, warnings, err := vendors.ExtractRows(spec, rows)
	if err != nil {
		return ProcessResult{}, err
	}

	switch spec.Kind {
	case internal.FeedOrder:
		run := s.engine.Run(items, runParams(vendor, spec, feedRow.Filename, pipeline.PriceLookups{}))
		return ProcessResult{Vendor: vendor.Name, Kind: spec.Kind,
			Products: run.Products, Warnings: append(warnings, run.Warnings...)}, nil

	case internal.FeedConfirmation:
		return s.reconcileConfirmation(vendor, spec, feedRow, items, warnings)

	case internal.FeedPriceList:
		lookups := pipeline.BuildLookupsFromItems(items)
		return s.repriceStored(vendor, feedRow, lookups, warnings)

	default:
		return ProcessResult{}, &internal.UnrecognizedFormatError{Vendor: vendor.Name, Hint: string(spec.Kind)}
	}
}

// reconcileConfirmation merges a confirmation file into the vendor's stored
// product set. The stored set stays authoritative for everything except the
// overlay fields the primary spec declares.
func (s *Service) reconcileConfirmation(vendor *vendors.Vendor, spec *vendors.Spec, feedRow internal.FeedRow, items []internal.RawLineItem, warnings []internal.Warning) (ProcessResult, error) {
	primary, err := s.db.LoadProducts(vendor.Name)
	if err != nil {
		return ProcessResult{}, err
	}
	if len(primary) == 0 {
		return ProcessResult{}, fmt.Errorf("vendor %s: no stored order to reconcile %s against", vendor.Name, feedRow.Filename)
	}

	secondaryRun := s.engine.Run(items, runParams(vendor, spec, feedRow.Filename, pipeline.PriceLookups{}))

	primarySpec := vendor.Primary()
	matchFn := primarySpec.MatchFn
	if matchFn == nil {
		matchFn = pipeline.MatchByReferenceColor
	}

	merged, reconcileWarnings := pipeline.Reconcile(vendor.Name, primary, secondaryRun.Products,
		matchFn, primarySpec.Overlay, primarySpec.SizeHint)

	return ProcessResult{Vendor: vendor.Name, Kind: spec.Kind,
		Products: merged, Warnings: append(warnings, reconcileWarnings...)}, nil
}

func (s *Service) processInvoice(vendor *vendors.Vendor, feedRow internal.FeedRow, raw []byte) (ProcessResult, error) {
	invoiceRows, err := reader.ReadInvoicePDF(raw)
	if err != nil {
		return ProcessResult{}, err
	}
	if len(invoiceRows) == 0 {
		return ProcessResult{}, &internal.EmptyOrInvalidSourceError{Vendor: vendor.Name, Rows: 0}
	}

	lookups := pipeline.PriceLookups{InvoiceByCode: pipeline.BuildInvoiceIndex(invoiceRows)}
	return s.repriceStored(vendor, feedRow, lookups, nil)
}

// repriceStored re-resolves prices on the stored product set with the newly
// arrived lookups (price list or invoice).
func (s *Service) repriceStored(vendor *vendors.Vendor, feedRow internal.FeedRow, lookups pipeline.PriceLookups, warnings []internal.Warning) (ProcessResult, error) {
	primary, err := s.db.LoadProducts(vendor.Name)
	if err != nil {
		return ProcessResult{}, err
	}
	if len(primary) == 0 {
		return ProcessResult{}, fmt.Errorf("vendor %s: no stored order to price %s against", vendor.Name, feedRow.Filename)
	}

	priceWarnings := s.engine.Reprice(primary, runParams(vendor, vendor.Primary(), feedRow.Filename, lookups))
	return ProcessResult{Vendor: vendor.Name, Kind: internal.FeedKind(feedRow.Kind),
		Products: primary, Warnings: append(warnings, priceWarnings...)}, nil
}

func (s *Service) persist(feedRow internal.FeedRow, vendor *vendors.Vendor, result ProcessResult) error {
	if err := s.db.ReplaceProducts(vendor.Name, result.Products); err != nil {
		return err
	}
	if err := s.db.ClearFeedWarnings(feedRow.ID); err != nil {
		return err
	}
	if err := s.db.InsertWarnings(feedRow.ID, result.Warnings); err != nil {
		return err
	}
	return s.db.UpdateFeedStatus(feedRow.ID, "processed")
}

func runParams(vendor *vendors.Vendor, spec *vendors.Spec, filename string, lookups pipeline.PriceLookups) pipeline.RunParams {
	keyFn := spec.KeyFn
	if keyFn == nil {
		keyFn = pipeline.KeyReferenceColor
	}
	return pipeline.RunParams{
		Vendor:              vendor.Name,
		Filename:            filename,
		KeyFn:               keyFn,
		SizeHint:            spec.SizeHint,
		MergeDuplicateSizes: spec.MergeDuplicateSizes,
		CostOrder:           spec.CostOrder,
		MarkupFactor:        spec.MarkupFactor,
		Brands:              vendor.Brands,
		Lookups:             lookups,
	}
}

// InferKind guesses what a file contains from its name. Used for manual
// uploads and for mail attachments alike.
func InferKind(vendor *vendors.Vendor, filename string) internal.FeedKind {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".pdf"):
		return internal.FeedInvoice
	case strings.Contains(name, "tarif") || strings.Contains(name, "price"):
		if vendor.SecondaryKind == internal.FeedPriceList {
			return internal.FeedPriceList
		}
		return internal.FeedOrder
	case strings.Contains(name, "conf"):
		if vendor.SecondaryKind == internal.FeedConfirmation {
			return internal.FeedConfirmation
		}
		return internal.FeedOrder
	default:
		return internal.FeedOrder
	}
}

func contentHash(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

func traceID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
