package cms

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dalemusser/meditrip/internal/app/system/content"
)

type dataItem struct {
	ID   string         `json:"id"`
	Data content.Record `json:"data"`
}

// record returns the item's data with _id filled from the envelope.
func (d dataItem) record() content.Record {
	rec := d.Data
	if rec == nil {
		rec = content.Record{}
	}
	if _, ok := rec["_id"]; !ok && d.ID != "" {
		rec["_id"] = d.ID
	}
	return rec
}

// QueryCollection queries a data collection (team, testimonials, ...).
func (c *Client) QueryCollection(ctx context.Context, collectionID string, query Query) (ItemList, error) {
	if collectionID == "" {
		return ItemList{}, fmt.Errorf("cms: query: empty collection id")
	}
	in := struct {
		DataCollectionID string    `json:"dataCollectionId"`
		Query            queryBody `json:"query"`
	}{DataCollectionID: collectionID, Query: query.body()}

	var resp struct {
		DataItems      []dataItem     `json:"dataItems"`
		PagingMetadata pagingMetadata `json:"pagingMetadata"`
	}
	if err := c.do(ctx, http.MethodPost, "/wix-data/v2/items/query", nil, in, &resp); err != nil {
		return ItemList{}, err
	}

	items := make([]content.Record, 0, len(resp.DataItems))
	for _, it := range resp.DataItems {
		items = append(items, it.record())
	}
	total, _ := resp.PagingMetadata.page(len(items), query.Limit)
	return ItemList{Items: items, Total: total}, nil
}

// InsertItem writes one record to a data collection and returns its id.
func (c *Client) InsertItem(ctx context.Context, collectionID string, data map[string]any) (string, error) {
	if collectionID == "" {
		return "", fmt.Errorf("cms: insert: empty collection id")
	}
	in := struct {
		DataCollectionID string `json:"dataCollectionId"`
		DataItem         struct {
			Data map[string]any `json:"data"`
		} `json:"dataItem"`
	}{DataCollectionID: collectionID}
	in.DataItem.Data = data

	var resp struct {
		DataItem dataItem `json:"dataItem"`
	}
	if err := c.do(ctx, http.MethodPost, "/wix-data/v2/items", nil, in, &resp); err != nil {
		return "", err
	}
	return resp.DataItem.ID, nil
}

// ListGalleryItems returns the items of one media gallery.
func (c *Client) ListGalleryItems(ctx context.Context, galleryID string, limit int) ([]content.Record, error) {
	if galleryID == "" {
		return nil, fmt.Errorf("cms: gallery: empty gallery id")
	}
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var resp struct {
		Items []content.Record `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/pro-gallery/v2/galleries/"+url.PathEscape(galleryID)+"/items", q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}
