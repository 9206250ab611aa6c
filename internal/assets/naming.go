package assets

import "regexp"

var nonAlphanumericRun = regexp.MustCompile(`[^0-9A-Za-z]+`)

// SanitizeName derives a variable name from an asset path by replacing every
// run of characters outside [0-9A-Za-z] with a single underscore, so
// "chart-v3.9.1.min.js" becomes "chart_v3_9_1_min_js". The result is not
// guaranteed to be a valid identifier; a leading digit is kept as is.
func SanitizeName(path string) string {
	return nonAlphanumericRun.ReplaceAllString(path, "_")
}
