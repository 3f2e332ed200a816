package content_test

import (
	"testing"

	"github.com/dalemusser/meditrip/internal/app/system/content"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name string
		rec  content.Record
		want string
	}{
		{"rfc3339", content.Record{"firstPublishedDate": "2024-03-05T10:00:00Z"}, "March 5, 2024"},
		{"millis", content.Record{"publishedDate": "2023-07-14T08:30:00.123Z"}, "July 14, 2023"},
		{"date only", content.Record{"date": "2022-01-31"}, "January 31, 2022"},
		{"wrapped", content.Record{"_createdDate": map[string]any{"$date": "2023-12-25T00:00:00.000Z"}}, "December 25, 2023"},
		{"unparseable", content.Record{"date": "last tuesday"}, ""},
		{"missing", content.Record{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := content.FormatDate(tt.rec, "publishedDate", "firstPublishedDate", "_createdDate", "date")
			if got != tt.want {
				t.Errorf("FormatDate = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseDate_PriorityOrder(t *testing.T) {
	rec := content.Record{
		"_createdDate":       "2020-01-01T00:00:00Z",
		"firstPublishedDate": "2021-06-01T00:00:00Z",
	}
	got, ok := content.ParseDate(rec, "firstPublishedDate", "_createdDate")
	if !ok || got.Year() != 2021 {
		t.Errorf("ParseDate = %v, %v", got, ok)
	}
}
