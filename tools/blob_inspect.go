package main

import (
	"encoding/base64"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gabriel-vasile/mimetype"
	"github.com/mama165/sdk-go/database"
	"github.com/olekukonko/tablewriter"

	"translate-chat/domain"
)

// Inspects the local image cache: one row per staged image, with its sniffed
// mime type and remaining TTL.
func main() {
	dbPath := flag.String("db", database.DefaultPath, "Path to badger DB")
	prefix := flag.String("prefix", domain.ImageKeyPrefix, "Key prefix to scan")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Mime", "Size", "Expires In"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()

			expiresIn := "none"
			if exp := item.ExpiresAt(); exp > 0 {
				remaining := time.Until(time.Unix(int64(exp), 0)).Round(time.Minute)
				expiresIn = remaining.String()
			}

			err := item.Value(func(v []byte) error {
				mime := "?"
				size := len(v)
				if raw, err := base64.StdEncoding.DecodeString(string(v)); err == nil {
					mime = mimetype.Detect(raw).String()
					size = len(raw)
				}
				table.Append([]string{
					string(item.Key()),
					mime,
					fmt.Sprintf("%d B", size),
					expiresIn,
				})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true).
		WithValueLogFileSize(10 * 1024 * 1024)
	return badger.Open(opts)
}
