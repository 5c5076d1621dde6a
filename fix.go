package yore

// Fix is a single recorded location history entry.
// Coordinates are stored multiplied by 1e7 so that interpolation can be done
// in exact integer arithmetic.
type Fix struct {
	TimestampMS int64  `json:"timestamp_ms"`
	LatitudeE7  int64  `json:"latitude_e7"`
	LongitudeE7 int64  `json:"longitude_e7"`
	Accuracy    uint16 `json:"accuracy"` // meters
}

// Coordinates returns the fix position in decimal degrees.
func (f Fix) Coordinates() Coordinates {
	return NewCoordinates(float64(f.LatitudeE7)/1e7, float64(f.LongitudeE7)/1e7)
}

// Timestamp returns the fix time in whole seconds since the Unix epoch.
func (f Fix) Timestamp() int64 {
	return f.TimestampMS / 1000
}
