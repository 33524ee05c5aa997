package kvk

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Link is a relation link of a search result, pointing at a detail resource.
type Link struct {
	Rel  string
	Href string
}

// searchResult is one parsed entry of the search response.
type searchResult struct {
	ID          string // process-local correlation id
	Type        string
	Attributes  Record // every field except type and links
	Links       []Link // in server order, one per relation
	Active      string // actief, empty if absent
	ExpiredName string // vervallenNaam, empty if absent
}

// parseResults extracts the entries of the "resultaten" array. A missing or
// non-array field yields no results; non-object entries parse as empty.
func parseResults(data Record) []searchResult {
	raw, ok := data["resultaten"].([]any)
	if !ok {
		return nil
	}
	results := make([]searchResult, 0, len(raw))
	for _, item := range raw {
		entry, _ := item.(map[string]any)
		results = append(results, parseResult(Record(entry)))
	}
	return results
}

func parseResult(entry Record) searchResult {
	attrs := make(Record, len(entry))
	for k, v := range entry {
		if k != "type" && k != "links" {
			attrs[k] = v
		}
	}

	res := searchResult{
		ID:         uuid.NewString(),
		Attributes: attrs,
		Links:      parseLinks(entry["links"]),
	}
	res.Type, _ = entry.String("type")
	res.Active, _ = entry.String("actief")
	res.ExpiredName, _ = entry.String("vervallenNaam")
	return res
}

// parseLinks turns a list of {rel, href} objects into an ordered relation
// list. A repeated relation keeps its first position and takes the last
// href; entries without href are skipped, entries without rel are kept
// individually.
func parseLinks(v any) []Link {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	var links []Link
	index := make(map[string]int)
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		link := Record(obj)
		href, ok := link.String("href")
		if !ok {
			continue
		}
		rel, hasRel := link.String("rel")
		if hasRel {
			if i, seen := index[rel]; seen {
				links[i].Href = href
				continue
			}
			index[rel] = len(links)
		}
		links = append(links, Link{Rel: rel, Href: href})
	}
	return links
}

// relatedRecord fetches every link of res in order and merges the returned
// objects, later fields overwriting earlier ones.
func (c *Client) relatedRecord(ctx context.Context, res searchResult) (Record, error) {
	merged := Record{}
	for _, l := range res.Links {
		body, err := c.Fetch(ctx, l.Href)
		if err != nil {
			return nil, fmt.Errorf("fetch %q link: %w", l.Rel, err)
		}
		data, err := decodeRecord(body)
		if err != nil {
			return nil, fmt.Errorf("%q link: %w", l.Rel, err)
		}
		merged.Merge(data)
	}
	return merged, nil
}
