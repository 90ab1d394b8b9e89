package render

import "math"

// Bucket is a discrete altitude range used to colour a card
type Bucket struct {
	Key   string // class suffix, e.g. "1000-2000"
	Label string // human readable range
	Color string // accent used by the terminal renderer
}

// ValueClass styles the altitude figure
func (b Bucket) ValueClass() string { return "altitude-" + b.Key }

// HeaderClass styles the card header
func (b Bucket) HeaderClass() string { return "aircraft-header-" + b.Key }

var (
	BucketUnknown = Bucket{Key: "unknown", Label: "unknown", Color: "#95A5A6"}
	bucketBelow   = Bucket{Key: "lt-1000", Label: "<1000", Color: "#E74C3C"}
	bucketTop     = Bucket{Key: "gt-30000", Label: "≥30000", Color: "#8E44AD"}
)

// bounded buckets, each covering [from, to)
var bounded = []struct {
	from, to float64
	bucket   Bucket
}{
	{1000, 2000, Bucket{Key: "1000-2000", Label: "1000-2000", Color: "#E67E22"}},
	{2000, 3000, Bucket{Key: "2000-3000", Label: "2000-3000", Color: "#F39C12"}},
	{3000, 5000, Bucket{Key: "3000-5000", Label: "3000-5000", Color: "#F1C40F"}},
	{5000, 7000, Bucket{Key: "5000-7000", Label: "5000-7000", Color: "#2ECC71"}},
	{7000, 10000, Bucket{Key: "7000-10000", Label: "7000-10000", Color: "#1ABC9C"}},
	{10000, 15000, Bucket{Key: "10000-15000", Label: "10000-15000", Color: "#3498DB"}},
	{15000, 20000, Bucket{Key: "15000-20000", Label: "15000-20000", Color: "#2980B9"}},
	{20000, 30000, Bucket{Key: "20000-30000", Label: "20000-30000", Color: "#9B59B6"}},
}

// AltitudeBucket classifies an altitude in feet. Zero counts as unknown, so an
// aircraft reporting exactly 0 ft is shown the same as one without altitude.
func AltitudeBucket(alt float64) Bucket {
	switch {
	case alt == 0 || math.IsNaN(alt):
		return BucketUnknown
	case alt < 1000:
		return bucketBelow
	case alt >= 30000:
		return bucketTop
	}
	for _, b := range bounded {
		if alt >= b.from && alt < b.to {
			return b.bucket
		}
	}
	return BucketUnknown
}

// Buckets lists every bucket from low to high, unknown first
func Buckets() []Bucket {
	out := []Bucket{BucketUnknown, bucketBelow}
	for _, b := range bounded {
		out = append(out, b.bucket)
	}
	return append(out, bucketTop)
}
