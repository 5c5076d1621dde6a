package yore

import (
	"context"
	"errors"
	"slices"
	"testing"
)

func TestRationalDegrees(t *testing.T) {
	tests := []struct {
		degrees float64
		want    string
	}{
		{55.6382576, "556382576/10000000 0/1 0/1"},
		{-9.094802222222222, "90948022/10000000 0/1 0/1"},
		{12.123456789, "121234567/10000000 0/1 0/1"},
		{0, "0/10000000 0/1 0/1"},
		{-180, "1800000000/10000000 0/1 0/1"},
	}

	for _, tt := range tests {
		if got := rationalDegrees(tt.degrees); got != tt.want {
			t.Errorf("rationalDegrees(%v) = %q, want %q", tt.degrees, got, tt.want)
		}
	}
}

func TestExiv2Args(t *testing.T) {
	got := exiv2Args("/photos/IMG_0001.jpg", NewCoordinates(38.76544, -9.094802222222222))

	want := []string{
		"-k",
		"-Mset Exif.GPSInfo.GPSLatitude 387654400/10000000 0/1 0/1",
		"-Mset Exif.GPSInfo.GPSLatitudeRef N",
		"-Mset Exif.GPSInfo.GPSLongitude 90948022/10000000 0/1 0/1",
		"-Mset Exif.GPSInfo.GPSLongitudeRef W",
		"/photos/IMG_0001.jpg",
	}
	if !slices.Equal(got, want) {
		t.Errorf("exiv2Args() =\n%q\nwant\n%q", got, want)
	}
}

func TestExiv2CommandWithoutExiv2(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := Exiv2Command(context.Background(), "photo.jpg", NewCoordinates(1, 1))
	if !errors.Is(err, ErrExiv2NotFound) {
		t.Errorf("Exiv2Command() error = %v, want %v", err, ErrExiv2NotFound)
	}

	if err := WriteCoordinates(context.Background(), "photo.jpg", NewCoordinates(1, 1)); !errors.Is(err, ErrExiv2NotFound) {
		t.Errorf("WriteCoordinates() error = %v, want %v", err, ErrExiv2NotFound)
	}
}
