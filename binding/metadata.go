package binding

import "strings"

const binarySuffix = "-bin"

// MetadataKeyIsLegal reports whether key may be used as a metadata key: non-empty and
// made only of lowercase letters, digits, '-', '_' and '.'.
func MetadataKeyIsLegal(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '-', c == '_', c == '.':
		default:
			return false
		}
	}
	return true
}

// MetadataNonbinValueIsLegal reports whether value may be sent under a non-binary key:
// printable ASCII only.
func MetadataNonbinValueIsLegal(value string) bool {
	for i := 0; i < len(value); i++ {
		if c := value[i]; c < 0x20 || c > 0x7e {
			return false
		}
	}
	return true
}

// MetadataKeyIsBinary reports whether values under key are carried as raw bytes.
func MetadataKeyIsBinary(key string) bool {
	return strings.HasSuffix(key, binarySuffix)
}
