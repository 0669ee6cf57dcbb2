package util

import (
	"fmt"
	"os"
	"path"
	"strings"
)

// WriteToFile writes the given lines to the file, creating parent
// directories as needed.
func WriteToFile(savePath string, content ...string) error {
	dir := path.Dir(savePath)
	if _, err := os.Stat(dir); err != nil {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return err
		}
	}
	return os.WriteFile(savePath, []byte(strings.Join(content, "\n")+"\n"), 0644)
}

// WriteValues dumps a value function, one state per line.
func WriteValues(savePath string, values []float64) error {
	lines := make([]string, len(values))
	for i, v := range values {
		lines[i] = fmt.Sprintf("%d %.6f", i, v)
	}
	return WriteToFile(savePath, lines...)
}
