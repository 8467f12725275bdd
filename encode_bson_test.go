package lens

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type bsonLine struct {
	SKU string `bson:"sku"`
	Qty int    `bson:"qty"`
}

type bsonOrder struct {
	ID       primitive.ObjectID `bson:"_id"`
	Customer string             `bson:"customer"`
	Total    int64              `bson:"total,minsize"`
	Big      int64              `bson:"big,minsize"`
	Note     string             `bson:"note,omitempty"`
	Lines    []bsonLine         `bson:"lines"`
	Shipped  *time.Time         `bson:"shipped"`
	Created  time.Time          `bson:"created"`
	Meta     map[string]string  `bson:"meta,omitempty"`
	Internal string             `bson:"-"`
	Priority uint8
}

type bsonInline struct {
	Name  string   `bson:"name"`
	Extra bsonLine `bson:",inline"`
}

func TestMarshalBSON_MatchesRecord(t *testing.T) {
	shipped := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	records := []bsonOrder{
		{},
		{
			ID:       primitive.NewObjectIDFromTimestamp(shipped),
			Customer: "c-1",
			Total:    120,
			Big:      1 << 40,
			Note:     "gift",
			Lines:    []bsonLine{{SKU: "a", Qty: 1}, {SKU: "b", Qty: 2}},
			Shipped:  &shipped,
			Created:  shipped.Add(-time.Hour),
			Meta:     map[string]string{"src": "web"},
			Internal: "hidden",
			Priority: 3,
		},
	}

	for i := range records {
		rec := &records[i]
		want, err := bson.Marshal(rec)
		if err != nil {
			t.Fatalf("bson.Marshal(record) error: %v", err)
		}
		got, err := bson.Marshal(Of(rec))
		if err != nil {
			t.Fatalf("bson.Marshal(view) error: %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("record %d:\n got %x\nwant %x", i, got, want)
		}
	}
}

func TestMarshalBSON_Subset(t *testing.T) {
	rec := bsonOrder{Customer: "c-1", Total: 5, Big: 1 << 40, Internal: "x"}

	tests := []struct {
		name  string
		names []string
		keys  []string
	}{
		{"declaration order", []string{"Big", "Customer"}, []string{"customer", "big"}},
		{"lowercased key", []string{"Priority"}, []string{"priority"}},
		{"omitempty", []string{"Note", "Meta"}, nil},
		{"skipped", []string{"Internal"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := Of(&rec).WithNames(tt.names...)
			if err != nil {
				t.Fatalf("WithNames() error: %v", err)
			}
			data, err := bson.Marshal(view)
			if err != nil {
				t.Fatalf("Marshal() error: %v", err)
			}
			elems, err := bson.Raw(data).Elements()
			if err != nil {
				t.Fatalf("Elements() error: %v", err)
			}
			if len(elems) != len(tt.keys) {
				t.Fatalf("len(elements) = %d, want %d", len(elems), len(tt.keys))
			}
			for i, e := range elems {
				if e.Key() != tt.keys[i] {
					t.Errorf("key %d = %q, want %q", i, e.Key(), tt.keys[i])
				}
			}
		})
	}
}

func TestMarshalBSON_MinSize(t *testing.T) {
	rec := bsonOrder{Total: 7, Big: 1 << 40}

	view, err := Of(&rec).WithNames("Total", "Big")
	if err != nil {
		t.Fatalf("WithNames() error: %v", err)
	}
	data, err := bson.Marshal(view)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	raw := bson.Raw(data)
	if got := raw.Lookup("total").Type; got != bson.TypeInt32 {
		t.Errorf("total type = %v, want int32", got)
	}
	if got := raw.Lookup("big").Type; got != bson.TypeInt64 {
		t.Errorf("big type = %v, want int64", got)
	}
}

func TestMarshalBSON_Errors(t *testing.T) {
	if _, err := bson.Marshal(Of[bsonOrder](nil)); !errors.Is(err, ErrNilRecord) {
		t.Errorf("Marshal(nil) error = %v, want ErrNilRecord", err)
	}
}

type bsonCounts struct {
	Name  string   `bson:"name"`
	Nums  []int64  `bson:"nums,minsize"`
	Ptr   *int64   `bson:"ptr,minsize"`
	Big   []int64  `bson:"big,minsize"`
	Extra bsonLine `bson:",inline"`
}

func TestMarshalBSON_DeclaredOptions(t *testing.T) {
	small, large := int64(9), int64(1<<40)
	rec := bsonCounts{
		Name:  "n",
		Nums:  []int64{1, 2, 3},
		Ptr:   &small,
		Big:   []int64{4, large},
		Extra: bsonLine{SKU: "s", Qty: 2},
	}

	tests := []struct {
		name  string
		names []string
	}{
		{"all", nil},
		{"minsize slice", []string{"Nums"}},
		{"minsize pointer", []string{"Ptr"}},
		{"mixed slice", []string{"Big"}},
		{"inline", []string{"Name", "Extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := Of(&rec).WithNames(tt.names...)
			if err != nil {
				t.Fatalf("WithNames() error: %v", err)
			}
			got, err := bson.Marshal(view)
			if err != nil {
				t.Fatalf("Marshal(view) error: %v", err)
			}

			full, err := bson.Marshal(&rec)
			if err != nil {
				t.Fatalf("Marshal(record) error: %v", err)
			}
			raw := bson.Raw(full)
			for _, e := range mustElements(t, got) {
				want := raw.Lookup(e.Key())
				if e.Value().Type != want.Type || !bytes.Equal(e.Value().Value, want.Value) {
					t.Errorf("%s = %v (%v), want %v (%v)", e.Key(), e.Value(), e.Value().Type, want, want.Type)
				}
			}
			if tt.names == nil && !bytes.Equal(got, full) {
				t.Errorf("Marshal(view)\n got %x\nwant %x", got, full)
			}
		})
	}
}

func TestMarshalBSON_MinSizeSlice(t *testing.T) {
	rec := bsonCounts{Nums: []int64{1, 2}}

	view, err := Of(&rec).WithNames("Nums")
	if err != nil {
		t.Fatalf("WithNames() error: %v", err)
	}
	data, err := bson.Marshal(view)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	values, err := bson.Raw(data).Lookup("nums").Array().Values()
	if err != nil {
		t.Fatalf("Values() error: %v", err)
	}
	for i, v := range values {
		if v.Type != bson.TypeInt32 {
			t.Errorf("nums[%d] type = %v, want int32", i, v.Type)
		}
	}
}

func TestMarshalBSON_Inline(t *testing.T) {
	rec := bsonInline{Name: "x", Extra: bsonLine{SKU: "a", Qty: 3}}

	want, err := bson.Marshal(&rec)
	if err != nil {
		t.Fatalf("Marshal(record) error: %v", err)
	}
	got, err := bson.Marshal(Of(&rec))
	if err != nil {
		t.Fatalf("Marshal(view) error: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Marshal(view)\n got %x\nwant %x", got, want)
	}

	view, err := Of(&rec).WithNames("Extra")
	if err != nil {
		t.Fatalf("WithNames() error: %v", err)
	}
	data, err := bson.Marshal(view)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	keys := []string{}
	for _, e := range mustElements(t, data) {
		keys = append(keys, e.Key())
	}
	if len(keys) != 2 || keys[0] != "sku" || keys[1] != "qty" {
		t.Errorf("keys = %v, want [sku qty]", keys)
	}
}

func mustElements(t *testing.T, data []byte) []bson.RawElement {
	t.Helper()
	elems, err := bson.Raw(data).Elements()
	if err != nil {
		t.Fatalf("Elements() error: %v", err)
	}
	return elems
}
