package publisher

import "strings"

var videoExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".webm", ".flv"}

// IsVideoURL reports whether the URL points at a video, judged by file
// extension. Every platform shares this one heuristic so they can never
// disagree about what a given URL is.
func IsVideoURL(mediaURL string) bool {
	lower := strings.ToLower(mediaURL)
	for _, ext := range videoExtensions {
		if strings.Contains(lower, ext) {
			return true
		}
	}
	return false
}
