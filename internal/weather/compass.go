package weather

// compassPoints and compassArrows are indexed by Bucket and must stay aligned.
var (
	compassPoints = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}
	compassArrows = [8]string{"↑", "↗", "→", "↘", "↓", "↙", "←", "↖"}
)

// Bucket reduces a bearing in degrees to one of the 8 compass slots.
// Negative and out-of-range bearings wrap around first.
func Bucket(bearing int) int {
	deg := bearing % 360
	if deg < 0 {
		deg += 360
	}
	return deg / 45 % 8
}

// CompassPoint returns the compass letters for a bearing, e.g. "NE".
func CompassPoint(bearing int) string {
	return compassPoints[Bucket(bearing)]
}

// CompassArrow returns the arrow glyph for a bearing, e.g. "↗".
func CompassArrow(bearing int) string {
	return compassArrows[Bucket(bearing)]
}
