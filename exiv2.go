package yore

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/exec"
)

// Exiv2Command returns a command that writes c into the EXIF GPS tags of the
// image at path using the exiv2 tool. The file's modification time is kept.
// Callers decide whether and when to run it.
func Exiv2Command(ctx context.Context, path string, c Coordinates) (*exec.Cmd, error) {
	bin, err := exec.LookPath("exiv2")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExiv2NotFound, err)
	}

	cmd := exec.CommandContext(ctx, bin, exiv2Args(path, c)...)
	cmd.Stderr = os.Stderr
	return cmd, nil
}

// WriteCoordinates saves c to the image at path with exiv2.
func WriteCoordinates(ctx context.Context, path string, c Coordinates) error {
	cmd, err := Exiv2Command(ctx, path, c)
	if err != nil {
		return err
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("yore: failed to save location for %q: %w", path, err)
	}
	return nil
}

func exiv2Args(path string, c Coordinates) []string {
	return []string{
		"-k",
		"-Mset Exif.GPSInfo.GPSLatitude " + rationalDegrees(c.Latitude),
		fmt.Sprintf("-Mset Exif.GPSInfo.GPSLatitudeRef %c", c.LatitudeRef()),
		"-Mset Exif.GPSInfo.GPSLongitude " + rationalDegrees(c.Longitude),
		fmt.Sprintf("-Mset Exif.GPSInfo.GPSLongitudeRef %c", c.LongitudeRef()),
		path,
	}
}

// rationalDegrees formats a coordinate as EXIF degrees/minutes/seconds
// rationals, putting the whole value in the degrees component. The sign is
// carried by the hemisphere reference tag.
func rationalDegrees(degrees float64) string {
	return fmt.Sprintf("%d/10000000 0/1 0/1", uint32(math.Abs(degrees)*1e7))
}
