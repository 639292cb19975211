package extraction

import (
	"fmt"
	"regexp"
)

var screenshotMarker = regexp.MustCompile(`\[SCREENSHOT\]`)

// RenumberScreenshotMarkers rewrites every bare [SCREENSHOT] token to
// [SCREENSHOT-N] with N counting from 1 in order of appearance, so the
// extraction model can reference captures by index. The marker count and
// order are preserved exactly.
func RenumberScreenshotMarkers(text string) string {
	n := 0
	return screenshotMarker.ReplaceAllStringFunc(text, func(string) string {
		n++
		return fmt.Sprintf("[SCREENSHOT-%d]", n)
	})
}
