package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"babette/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS feeds (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  vendor TEXT NOT NULL,
  kind TEXT NOT NULL,
  filename TEXT NOT NULL,
  sender TEXT,
  receivedAt TEXT,
  hash TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  rawRef TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(vendor, hash)
);

CREATE TABLE IF NOT EXISTS products (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  vendor TEXT NOT NULL,
  position INTEGER NOT NULL,
  reference TEXT NOT NULL,
  name TEXT,
  originalName TEXT,
  color TEXT,
  material TEXT,
  description TEXT,
  csvCategory TEXT,
  ageGroup TEXT NOT NULL,
  suggestedBrand TEXT,
  selectedCategory TEXT,
  publicCategoriesJson TEXT NOT NULL DEFAULT '[]',
  tagsJson TEXT NOT NULL DEFAULT '[]'
);
CREATE INDEX IF NOT EXISTS idx_products_vendor ON products(vendor);

CREATE TABLE IF NOT EXISTS variants (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  productId INTEGER NOT NULL,
  position INTEGER NOT NULL,
  size TEXT,
  rawSize TEXT,
  quantity INTEGER NOT NULL DEFAULT 0,
  ean TEXT,
  sku TEXT,
  price TEXT NOT NULL DEFAULT '0',
  rrp TEXT NOT NULL DEFAULT '0',
  priceSource TEXT,
  rrpSource TEXT,
  inlinePrice TEXT,
  inlineRrp TEXT,
  FOREIGN KEY(productId) REFERENCES products(id)
);

CREATE TABLE IF NOT EXISTS warnings (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  feedId INTEGER NOT NULL,
  kind TEXT NOT NULL,
  reference TEXT,
  detail TEXT NOT NULL,
  count INTEGER NOT NULL DEFAULT 1,
  samplesJson TEXT NOT NULL DEFAULT '[]',
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(feedId) REFERENCES feeds(id)
);

CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  feedId INTEGER,
  timingsJson TEXT NOT NULL,
  countsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(feedId) REFERENCES feeds(id)
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
	_, err := d.conn.Exec(schema)
	return err
}

func (d *DB) UpsertFeed(vendor, kind, filename, sender, receivedAt, hash, rawRef, status string) (internal.FeedRow, error) {
	_, err := d.conn.Exec(`
INSERT INTO feeds (vendor, kind, filename, sender, receivedAt, hash, rawRef, status)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(vendor, hash) DO UPDATE SET
  kind=excluded.kind,
  filename=excluded.filename,
  updatedAt=CURRENT_TIMESTAMP
`, vendor, kind, filename, sender, receivedAt, hash, rawRef, status)
	if err != nil {
		return internal.FeedRow{}, err
	}

	row, err := d.GetFeedByHash(vendor, hash)
	if err != nil {
		return internal.FeedRow{}, err
	}
	if row == nil {
		return internal.FeedRow{}, fmt.Errorf("feed not found after upsert: vendor=%s hash=%s", vendor, hash)
	}
	return *row, nil
}

func (d *DB) GetFeedByHash(vendor, hash string) (*internal.FeedRow, error) {
	return d.scanFeed(d.conn.QueryRow(
		`SELECT id, vendor, kind, filename, COALESCE(sender,''), COALESCE(receivedAt,''), hash, status, rawRef
		 FROM feeds WHERE vendor = ? AND hash = ?`, vendor, hash))
}

func (d *DB) GetFeed(id int) (*internal.FeedRow, error) {
	return d.scanFeed(d.conn.QueryRow(
		`SELECT id, vendor, kind, filename, COALESCE(sender,''), COALESCE(receivedAt,''), hash, status, rawRef
		 FROM feeds WHERE id = ?`, id))
}

func (d *DB) scanFeed(row *sql.Row) (*internal.FeedRow, error) {
	var f internal.FeedRow
	err := row.Scan(&f.ID, &f.Vendor, &f.Kind, &f.Filename, &f.Sender, &f.ReceivedAt, &f.Hash, &f.Status, &f.RawRef)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (d *DB) ListFeedsByStatus(status string, limit int) ([]internal.FeedRow, error) {
	rows, err := d.conn.Query(
		`SELECT id, vendor, kind, filename, COALESCE(sender,''), COALESCE(receivedAt,''), hash, status, rawRef
		 FROM feeds WHERE status = ? ORDER BY id ASC LIMIT ?`, status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.FeedRow
	for rows.Next() {
		var f internal.FeedRow
		if err := rows.Scan(&f.ID, &f.Vendor, &f.Kind, &f.Filename, &f.Sender, &f.ReceivedAt, &f.Hash, &f.Status, &f.RawRef); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (d *DB) UpdateFeedStatus(id int, status string) error {
	_, err := d.conn.Exec(`UPDATE feeds SET status = ?, updatedAt = CURRENT_TIMESTAMP WHERE id = ?`, status, id)
	return err
}

// ReplaceProducts swaps the stored product set of one vendor for the given
// one. Re-processing a feed therefore converges instead of accumulating.
func (d *DB) ReplaceProducts(vendor string, products []*internal.Product) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM variants WHERE productId IN (SELECT id FROM products WHERE vendor = ?)`, vendor); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM products WHERE vendor = ?`, vendor); err != nil {
		return err
	}

	productStmt, err := tx.Prepare(`
INSERT INTO products (vendor, position, reference, name, originalName, color, material, description,
  csvCategory, ageGroup, suggestedBrand, selectedCategory, publicCategoriesJson, tagsJson)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return err
	}
	defer productStmt.Close()

	variantStmt, err := tx.Prepare(`
INSERT INTO variants (productId, position, size, rawSize, quantity, ean, sku, price, rrp, priceSource, rrpSource, inlinePrice, inlineRrp)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return err
	}
	defer variantStmt.Close()

	for pos, p := range products {
		categoriesJSON, _ := json.Marshal(p.PublicCategories)
		tagsJSON, _ := json.Marshal(p.ProductTags)

		var selected any
		if p.SelectedCategory != nil {
			selected = *p.SelectedCategory
		}

		res, err := productStmt.Exec(vendor, pos, p.Reference, p.Name, p.OriginalName, p.Color,
			p.Material, p.EcommerceDescription, p.CSVCategory, string(p.AgeGroup),
			p.SuggestedBrand, selected, string(categoriesJSON), string(tagsJSON))
		if err != nil {
			return err
		}
		productID, err := res.LastInsertId()
		if err != nil {
			return err
		}

		for vpos, v := range p.Variants {
			if _, err := variantStmt.Exec(productID, vpos, v.Size, v.RawSize, v.Quantity,
				v.EAN, v.SKU, v.Price.String(), v.RRP.String(),
				string(v.PriceSource), string(v.RRPSource),
				decimalPtrString(v.InlinePrice), decimalPtrString(v.InlineRRP)); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// LoadProducts restores a vendor's product set in stored order, for
// reconciliation against a later feed.
func (d *DB) LoadProducts(vendor string) ([]*internal.Product, error) {
	rows, err := d.conn.Query(`
SELECT id, reference, COALESCE(name,''), COALESCE(originalName,''), COALESCE(color,''),
  COALESCE(material,''), COALESCE(description,''), COALESCE(csvCategory,''), ageGroup,
  COALESCE(suggestedBrand,''), selectedCategory, publicCategoriesJson, tagsJson
FROM products WHERE vendor = ? ORDER BY position ASC`, vendor)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*internal.Product
	ids := []int64{}
	byID := map[int64]*internal.Product{}
	for rows.Next() {
		var id int64
		var selected sql.NullString
		var categoriesJSON, tagsJSON string
		p := &internal.Product{}
		var age string
		if err := rows.Scan(&id, &p.Reference, &p.Name, &p.OriginalName, &p.Color,
			&p.Material, &p.EcommerceDescription, &p.CSVCategory, &age,
			&p.SuggestedBrand, &selected, &categoriesJSON, &tagsJSON); err != nil {
			return nil, err
		}
		p.AgeGroup = internal.AgeGroup(age)
		if selected.Valid {
			s := selected.String
			p.SelectedCategory = &s
		}
		_ = json.Unmarshal([]byte(categoriesJSON), &p.PublicCategories)
		_ = json.Unmarshal([]byte(tagsJSON), &p.ProductTags)
		out = append(out, p)
		ids = append(ids, id)
		byID[id] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, id := range ids {
		if err := d.loadVariants(id, byID[id]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (d *DB) loadVariants(productID int64, p *internal.Product) error {
	rows, err := d.conn.Query(`
SELECT COALESCE(size,''), COALESCE(rawSize,''), quantity, COALESCE(ean,''), COALESCE(sku,''),
  price, rrp, COALESCE(priceSource,''), COALESCE(rrpSource,''), inlinePrice, inlineRrp
FROM variants WHERE productId = ? ORDER BY position ASC`, productID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		v := &internal.Variant{}
		var price, rrp string
		var inlinePrice, inlineRRP sql.NullString
		if err := rows.Scan(&v.Size, &v.RawSize, &v.Quantity, &v.EAN, &v.SKU,
			&price, &rrp, (*string)(&v.PriceSource), (*string)(&v.RRPSource),
			&inlinePrice, &inlineRRP); err != nil {
			return err
		}
		v.Price, _ = decimal.NewFromString(price)
		v.RRP, _ = decimal.NewFromString(rrp)
		v.InlinePrice = decimalPtrFromNull(inlinePrice)
		v.InlineRRP = decimalPtrFromNull(inlineRRP)
		p.Variants = append(p.Variants, v)
	}
	return rows.Err()
}

func decimalPtrString(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func decimalPtrFromNull(s sql.NullString) *decimal.Decimal {
	if !s.Valid {
		return nil
	}
	d, err := decimal.NewFromString(s.String)
	if err != nil {
		return nil
	}
	return &d
}

func (d *DB) ClearFeedWarnings(feedID int) error {
	_, err := d.conn.Exec(`DELETE FROM warnings WHERE feedId = ?`, feedID)
	return err
}

func (d *DB) InsertWarnings(feedID int, warnings []internal.Warning) error {
	for _, w := range warnings {
		samplesJSON, _ := json.Marshal(w.Samples)
		if _, err := d.conn.Exec(
			`INSERT INTO warnings (feedId, kind, reference, detail, count, samplesJson) VALUES (?, ?, ?, ?, ?, ?)`,
			feedID, string(w.Kind), w.Reference, w.Detail, w.Count, string(samplesJSON)); err != nil {
			return err
		}
	}
	return nil
}

func (d *DB) InsertRun(traceID string, feedID int, timings map[string]float64, counts map[string]int) error {
	timingsJSON, _ := json.Marshal(timings)
	countsJSON, _ := json.Marshal(counts)
	_, err := d.conn.Exec(`INSERT INTO runs (traceId, feedId, timingsJson, countsJson) VALUES (?, ?, ?, ?)`,
		traceID, feedID, string(timingsJSON), string(countsJSON))
	return err
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
