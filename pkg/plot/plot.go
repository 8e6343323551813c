// Package plot renders node data as terminal charts.
//
// Time series are bucketed event counts drawn with asciigraph; identifiers
// and categorical values are drawn as text tables.
package plot

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"

	"github.com/kubev2v/node-inspector/internal/models"
)

const (
	defaultBuckets = 60
	defaultHeight  = 10
	barWidth       = 40
)

type options struct {
	buckets int
	height  int
}

type Option func(*options)

// WithBuckets sets how many time buckets the series range is split into.
func WithBuckets(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.buckets = n
		}
	}
}

func WithHeight(h int) Option {
	return func(o *options) {
		if h > 0 {
			o.height = h
		}
	}
}

// ParseTimestamp accepts time.Time values and strings in the node
// timestamp layout, with or without fractional seconds.
func ParseTimestamp(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		for _, layout := range []string{models.TimestampLayout, time.DateTime, time.RFC3339Nano} {
			if ts, err := time.Parse(layout, t); err == nil {
				return ts, nil
			}
		}
		return time.Time{}, errors.Newf("invalid timestamp %q", t)
	case []byte:
		return ParseTimestamp(string(t))
	default:
		return time.Time{}, errors.Newf("invalid timestamp of type %T", v)
	}
}

// Counts buckets timestamps over their range. NULL values are skipped and
// fewer than one bucket means one.
func Counts(values []any, buckets int) ([]float64, time.Time, time.Time, error) {
	buckets = max(buckets, 1)
	stamps := make([]time.Time, 0, len(values))
	for _, v := range values {
		if v == nil {
			continue
		}
		ts, err := ParseTimestamp(v)
		if err != nil {
			return nil, time.Time{}, time.Time{}, err
		}
		stamps = append(stamps, ts)
	}
	if len(stamps) == 0 {
		return nil, time.Time{}, time.Time{}, nil
	}

	sort.Slice(stamps, func(i, j int) bool { return stamps[i].Before(stamps[j]) })
	first, last := stamps[0], stamps[len(stamps)-1]
	span := last.Sub(first)
	if span == 0 {
		return []float64{float64(len(stamps))}, first, last, nil
	}

	series := make([]float64, buckets)
	for _, ts := range stamps {
		idx := int(float64(ts.Sub(first)) / float64(span) * float64(buckets-1))
		series[idx]++
	}
	return series, first, last, nil
}

// TimeSeries plots how many events fall in each time bucket.
func TimeSeries(values []any, title string, opts ...Option) (string, error) {
	o := options{buckets: defaultBuckets, height: defaultHeight}
	for _, opt := range opts {
		opt(&o)
	}

	series, first, last, err := Counts(values, o.buckets)
	if err != nil {
		return "", err
	}
	if len(series) == 0 {
		return fmt.Sprintf("%s\nno data\n", title), nil
	}
	// asciigraph needs two points to draw a line
	if len(series) == 1 {
		series = append(series, series[0])
	}

	graph := asciigraph.Plot(series,
		asciigraph.Height(o.height),
		asciigraph.LowerBound(0),
		asciigraph.Caption(title),
	)
	return fmt.Sprintf("%s\n%s .. %s\n", graph, first.Format(models.TimestampLayout), last.Format(models.TimestampLayout)), nil
}

// IDs lists identifiers sorted, each at its position.
func IDs(ids []string, title string) string {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)

	var buf bytes.Buffer
	buf.WriteString(title + "\n")
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"#", "ID"})
	for i, id := range sorted {
		table.Append([]string{fmt.Sprint(i), id})
	}
	table.Render()
	return buf.String()
}

// StatusCounts draws relative frequencies of each distinct value as bars.
// Values are ordered by descending count, then by value.
func StatusCounts(values []any, title string) string {
	counts := map[string]int{}
	for _, v := range values {
		counts[models.FormatValue(v)]++
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	var buf bytes.Buffer
	buf.WriteString(title + "\n")
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"VALUE", "COUNT", "SHARE", ""})
	for _, k := range keys {
		share := float64(counts[k]) / float64(len(values))
		table.Append([]string{
			k,
			fmt.Sprint(counts[k]),
			fmt.Sprintf("%.1f%%", share*100),
			strings.Repeat("█", max(1, int(share*barWidth))),
		})
	}
	table.Render()
	return buf.String()
}
