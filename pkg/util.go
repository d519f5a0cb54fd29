package pkg

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unsafe"
)

var ErrEmptyDate = errors.New("empty date")

// BytesToString converts bytes slice to a string without extra allocation
func BytesToString(buf []byte) string {
	return *(*string)(unsafe.Pointer(&buf))
}

// PathExists returns whether the given file or directory exists
func PathExists(path string, isDir bool) (bool, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if isDir != stat.IsDir() {
		return false, fmt.Errorf("path [%s] exists, but dir=%t", path, stat.IsDir())
	}
	return true, nil
}

// ParseDate parses a YYYY-MM-DD request parameter as a local date.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrEmptyDate
	}
	date, err := time.ParseInLocation(time.DateOnly, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date [%s], expected YYYY-MM-DD: %w", value, err)
	}
	return date, nil
}
