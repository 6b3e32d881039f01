package util

import "os"

// IsDir reports whether path exists and is a directory
func IsDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// DropFirst removes the first n bytes of s, an empty string is returned if s is shorter
func DropFirst(s string, n int) string {
	if len(s) < n {
		return ""
	}
	return s[n:]
}

// DropLast removes the last n bytes of s, an empty string is returned if s is shorter
func DropLast(s string, n int) string {
	if len(s) < n {
		return ""
	}
	return s[:len(s)-n]
}
