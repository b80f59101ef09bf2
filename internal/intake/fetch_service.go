package intake

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhillyerd/enmime"

	"babette/internal"
	"babette/internal/feed"
	"babette/internal/storage"
	"babette/internal/vendors"
)

type FetchService struct {
	db        *storage.DB
	connector MailConnector
	rawDir    string
}

type FetchResult struct {
	Fetched     int
	Attachments int
	Stored      int
	Skipped     int
}

func NewFetchService(db *storage.DB, rawDir string, connector MailConnector) *FetchService {
	return &FetchService{db: db, connector: connector, rawDir: rawDir}
}

// FetchAndStore pulls messages, matches each sender to a vendor and stores
// every recognized attachment as a feed. Messages from unknown senders are
// counted but otherwise ignored.
func (s *FetchService) FetchAndStore(label string, max int) (FetchResult, error) {
	messages, err := s.connector.FetchInbox(label, max)
	if err != nil {
		return FetchResult{}, err
	}

	result := FetchResult{Fetched: len(messages)}
	for _, msg := range messages {
		stored, skipped, err := s.storeMessage(msg)
		if err != nil {
			return result, err
		}
		result.Stored += stored
		result.Skipped += skipped
	}
	return result, nil
}

func (s *FetchService) storeMessage(msg internal.FetchedMailMessage) (stored, skipped int, err error) {
	vendor, ok := vendors.BySenderDomain(msg.From)
	if !ok {
		fmt.Printf("intake: no vendor for sender %q, skipping message %s\n", msg.From, msg.MessageID)
		return 0, 1, nil
	}

	envelope, err := enmime.ReadEnvelope(bytes.NewReader(msg.Raw))
	if err != nil {
		return 0, 0, fmt.Errorf("parse message %s: %w", msg.MessageID, err)
	}

	for _, att := range envelope.Attachments {
		if att.FileName == "" || !supportedAttachment(att.FileName) {
			skipped++
			continue
		}

		hash := contentHash(att.Content)
		existing, err := s.db.GetFeedByHash(vendor.Name, hash)
		if err != nil {
			return stored, skipped, err
		}
		if existing != nil {
			skipped++
			continue
		}

		rawPath, err := s.storeRaw(att.FileName, hash, att.Content)
		if err != nil {
			return stored, skipped, err
		}

		kind := feed.InferKind(vendor, att.FileName)
		if _, err := s.db.UpsertFeed(vendor.Name, string(kind), att.FileName, msg.From,
			msg.ReceivedAt, hash, rawPath, "pending"); err != nil {
			return stored, skipped, err
		}
		fmt.Printf("intake: stored %s feed %q for vendor %s\n", kind, att.FileName, vendor.Name)
		stored++
	}
	return stored, skipped, nil
}

// storeRaw writes the attachment content-addressed, so re-fetching the same
// mail never duplicates files on disk.
func (s *FetchService) storeRaw(filename, hash string, content []byte) (string, error) {
	if err := os.MkdirAll(s.rawDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.rawDir, hash+strings.ToLower(filepath.Ext(filename)))
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, content, 0o644); err != nil {
			return "", err
		}
	}
	return path, nil
}

func supportedAttachment(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt", ".xls", ".xlsx", ".pdf":
		return true
	}
	return false
}

func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
