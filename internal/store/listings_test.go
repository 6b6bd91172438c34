package store

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"homematch/internal/model"
)

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(filepath.Join(dir, "listings.json"))

	price := 800000
	beds := 3
	baths := 2.5
	size := 2000
	records := []model.ListingRecord{
		{
			Neighborhood:            "Green Oaks",
			Price:                   &price,
			Bedrooms:                &beds,
			Bathrooms:               &baths,
			HouseSize:               &size,
			Description:             "An eco-friendly oasis.",
			NeighborhoodDescription: "A close-knit community.",
		},
		{
			Neighborhood:            "Cedar Hills",
			Description:             "A home with an unlisted price.",
			NeighborhoodDescription: "Up-and-coming.",
		},
	}

	if err := s.Save(records); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !reflect.DeepEqual(records, loaded) {
		t.Errorf("round trip mismatch:\n saved: %+v\nloaded: %+v", records, loaded)
	}
}

func TestFileStoreNullFieldsSurvive(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(filepath.Join(dir, "listings.json"))

	records := []model.ListingRecord{
		{
			Neighborhood:            "Cedar Hills",
			Description:             "Price unknown.",
			NeighborhoodDescription: "Quiet.",
		},
	}
	if err := s.Save(records); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded[0].Price != nil {
		t.Errorf("price = %v, want null", *loaded[0].Price)
	}
	if loaded[0].Bathrooms != nil {
		t.Errorf("bathrooms = %v, want null", *loaded[0].Bathrooms)
	}
}

func TestFileStoreLoadMissingFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "missing.json"))
	if _, err := s.Load(); err == nil {
		t.Error("Load() of a missing file should return an error")
	} else if !strings.Contains(err.Error(), "missing.json") {
		t.Errorf("error %q should name the file", err)
	}
}
