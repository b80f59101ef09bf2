package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"babette/internal"
	"babette/internal/config"
	"babette/internal/feed"
	"babette/internal/intake"
	gmailconnector "babette/internal/intake/gmail"
	imapconnector "babette/internal/intake/imap"
	"babette/internal/pipeline"
	"babette/internal/storage"
	"babette/internal/vendors"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	cmd := os.Args[1]
	switch cmd {
	case "feed:process":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		vendor := fs.String("vendor", "", "vendor name")
		input := fs.String("input", "", "order/confirmation/pricelist/invoice file")
		batch := fs.Int("batch", 20, "pending batch size")
		_ = fs.Parse(os.Args[2:])

		svc := feed.NewService(db, cfg)
		if strings.TrimSpace(*input) != "" {
			if strings.TrimSpace(*vendor) == "" {
				must(fmt.Errorf("--vendor is required with --input"))
			}
			result, err := svc.ProcessFile(*vendor, *input)
			must(err)
			fmt.Printf("processed %s feed for %s: products=%d warnings=%d\n",
				result.Kind, result.Vendor, len(result.Products), len(result.Warnings))
			printWarnings(result.Warnings)
			return
		}
		processed, err := svc.ProcessPending(*batch)
		must(err)
		fmt.Printf("processed pending feeds=%d\n", processed)
	case "feed:reconcile":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		vendor := fs.String("vendor", "", "vendor name")
		order := fs.String("order", "", "order file")
		confirmation := fs.String("confirmation", "", "confirmation file")
		_ = fs.Parse(os.Args[2:])
		if *vendor == "" || *order == "" || *confirmation == "" {
			must(fmt.Errorf("--vendor --order --confirmation are required"))
		}

		svc := feed.NewService(db, cfg)
		_, err := svc.ProcessFile(*vendor, *order)
		must(err)
		result, err := svc.ProcessFile(*vendor, *confirmation)
		must(err)
		fmt.Printf("reconciled %s: products=%d warnings=%d\n", *vendor, len(result.Products), len(result.Warnings))
		printWarnings(result.Warnings)
	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		vendor := fs.String("vendor", "", "vendor name")
		out := fs.String("out", "", "output xlsx path")
		upload := fs.Bool("upload", false, "apply upload transforms (unit collapse, adult EU sizes)")
		_ = fs.Parse(os.Args[2:])
		if *vendor == "" || strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--vendor and --out are required"))
		}

		products, err := db.LoadProducts(*vendor)
		must(err)
		if len(products) == 0 {
			must(fmt.Errorf("no stored products for vendor=%s", *vendor))
		}
		if *upload {
			pipeline.PrepareForUpload(products)
		}
		must(pipeline.ExportProductsToXLSX(products, nil, *out))
		fmt.Printf("exported %d products to %s\n", len(products), *out)
	case "intake:fetch":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		provider := fs.String("provider", cfg.IntakeProvider, "gmail|imap")
		label := fs.String("label", cfg.IntakeLabel, "mailbox/label")
		max := fs.Int("max", cfg.IntakeFetchMax, "max messages")
		_ = fs.Parse(os.Args[2:])

		conn, err := makeConnector(cfg, *provider)
		must(err)
		fetcher := intake.NewFetchService(db, cfg.RawIntakeDir, conn)
		result, err := fetcher.FetchAndStore(*label, *max)
		must(err)
		fmt.Printf("intake fetch done provider=%s fetched=%d stored=%d skipped=%d\n",
			*provider, result.Fetched, result.Stored, result.Skipped)
	case "intake:listen":
		l := intake.NewListener(db, cfg)
		must(l.Run(context.Background()))
	case "vendors:list":
		printVendors()
	default:
		usage()
		os.Exit(1)
	}
}

func makeConnector(cfg config.Config, provider string) (intake.MailConnector, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "gmail":
		return gmailconnector.NewConnector(cfg)
	case "imap":
		return imapconnector.NewConnector(cfg)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

func printWarnings(warnings []internal.Warning) {
	for _, w := range warnings {
		detail := w.Detail
		if w.Count > 1 {
			detail = fmt.Sprintf("%s (x%d)", detail, w.Count)
		}
		fmt.Printf("  warning [%s] %s %s: %s\n", w.Kind, w.Vendor, w.Reference, detail)
	}
}

func printVendors() {
	registry := vendors.Registry()
	for _, name := range vendors.Names() {
		v := registry[name]
		kinds := make([]string, 0, len(v.Specs))
		for _, spec := range v.Specs {
			kinds = append(kinds, string(spec.Kind))
		}
		fmt.Printf("  %-8s %-24s feeds: %s\n", v.Name, v.Label, strings.Join(kinds, ", "))
	}
}

func usage() {
	fmt.Println("usage: babette <command>")
	fmt.Println("commands:")
	fmt.Println("  feed:process --vendor=... --input=./order.csv | --batch=20")
	fmt.Println("  feed:reconcile --vendor=... --order=... --confirmation=...")
	fmt.Println("  export:xlsx --vendor=... --out=./out/result.xlsx [--upload]")
	fmt.Println("  intake:fetch --provider=gmail|imap --label=INBOX --max=20")
	fmt.Println("  intake:listen")
	fmt.Println("  vendors:list")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
