// Package ingest fetches procurement notices from the Diário da República:
// it parses the DRE RSS feed, scrapes each announcement page for the
// structured detail block, and maintains the active record set on disk.
package ingest

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"
)

// FeedItem is one entry of the DRE RSS feed before detail enrichment.
type FeedItem struct {
	Numero   string
	Entidade string
	Link     string
}

type rssDocument struct {
	Items []rssEntry `xml:"channel>item"`
}

type rssEntry struct {
	Title       string `xml:"title"`
	Description string `xml:"description"`
	Link        string `xml:"link"`
}

// Announcement titles carry the procedure number as "n.º NNN/YYYY".
var numeroRe = regexp.MustCompile(`n\.º\s*(\d+)/\d+`)

// ParseFeed extracts the feed items from raw RSS XML. Items without a link
// are dropped; a missing procedure number yields "N/A" like the dataset's
// other absent values.
func ParseFeed(data []byte) ([]FeedItem, error) {
	var doc rssDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	items := make([]FeedItem, 0, len(doc.Items))
	for _, entry := range doc.Items {
		link := strings.TrimSpace(entry.Link)
		if link == "" {
			continue
		}

		title := strings.TrimSpace(entry.Title)
		numero := "N/A"
		if m := numeroRe.FindStringSubmatch(title); m != nil {
			numero = m[1]
		}

		items = append(items, FeedItem{
			Numero:   numero,
			Entidade: title,
			Link:     link,
		})
	}
	return items, nil
}
