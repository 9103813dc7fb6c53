package platform

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// AudioMIMEPrefix marks a MIME type as audio
const AudioMIMEPrefix = "audio/"

// DefaultAudioMIME is assumed when nothing better is known
const DefaultAudioMIME = "audio/wav"

// extensionMIME maps common audio extensions to the types the decoder expects
var extensionMIME = map[string]string{
	".wav":  "audio/wav",
	".wave": "audio/wav",
	".mp3":  "audio/mpeg",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".flac": "audio/flac",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
	".opus": "audio/opus",
}

// mimeExtension is the reverse of extensionMIME for the canonical types
var mimeExtension = map[string]string{
	"audio/wav":  ".wav",
	"audio/mpeg": ".mp3",
	"audio/ogg":  ".ogg",
	"audio/flac": ".flac",
	"audio/mp4":  ".m4a",
	"audio/aac":  ".aac",
	"audio/opus": ".opus",
}

// aliases normalizes the MIME types reported by sniffers and browsers
var aliases = map[string]string{
	"audio/x-wav":     "audio/wav",
	"audio/wave":      "audio/wav",
	"audio/vnd.wave":  "audio/wav",
	"audio/mp3":       "audio/mpeg",
	"audio/x-mp3":     "audio/mpeg",
	"audio/x-flac":    "audio/flac",
	"audio/x-m4a":     "audio/mp4",
	"audio/vorbis":    "audio/ogg",
	"application/ogg": "audio/ogg",
}

// NormalizeMIME lowercases a MIME type, drops parameters and maps aliases
func NormalizeMIME(mime string) string {
	clean := strings.ToLower(strings.TrimSpace(mime))
	if idx := strings.Index(clean, ";"); idx >= 0 {
		clean = strings.TrimSpace(clean[:idx])
	}
	if alias, ok := aliases[clean]; ok {
		return alias
	}
	return clean
}

// IsAudioMIME reports whether the type denotes audio
func IsAudioMIME(mime string) bool {
	return strings.HasPrefix(NormalizeMIME(mime), AudioMIMEPrefix)
}

// DetectAudioMIME returns the MIME type of a file from its content, falling
// back to the extension when sniffing is inconclusive.
func DetectAudioMIME(name string, data []byte) string {
	if len(data) > 0 {
		detected := NormalizeMIME(mimetype.Detect(data).String())
		if IsAudioMIME(detected) {
			return detected
		}
	}
	if mime, ok := extensionMIME[strings.ToLower(filepath.Ext(name))]; ok {
		return mime
	}
	if len(data) > 0 {
		return NormalizeMIME(mimetype.Detect(data).String())
	}
	return ""
}

// ExtensionForMIME returns a file extension for the audio type, or ".bin"
func ExtensionForMIME(mime string) string {
	if ext, ok := mimeExtension[NormalizeMIME(mime)]; ok {
		return ext
	}
	return ".bin"
}
