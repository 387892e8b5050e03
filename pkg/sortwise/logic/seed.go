package logic

import (
	"bufio"
	"fmt"
	"os"
)

// ReadSeedFile reads a line-oriented seed resource. Every line is returned
// as-is; blank lines and '#' comments are filtered later by Seed, so a file
// and a literal []string seed behave identically.
func ReadSeedFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return lines, nil
}
