package vpcflow

import "strings"

// Format is the decoding strategy selected for an object.
type Format string

// Known formats. FormatUnknown objects are skipped, never failed.
const (
	FormatText    Format = "text"
	FormatParquet Format = "parquet"
	FormatUnknown Format = "unknown"

	// FormatPlainText is uncompressed text. DetectFormat never returns
	// it; the standalone tool selects it for local exports.
	FormatPlainText Format = "plain"
)

// DetectFormat classifies an object key by its suffix.
func DetectFormat(key string) Format {
	switch {
	case strings.HasSuffix(key, ".parquet"):
		return FormatParquet
	case strings.HasSuffix(key, ".gz"):
		return FormatText
	}
	return FormatUnknown
}
