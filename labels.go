package annotate

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadLabels reads the class labels from the given text file, one label
// per line.  The label's position in the returned list is its class ID.
// Lines are trimmed of surrounding whitespace and blank lines are
// skipped, so a trailing newline never produces an empty class
func LoadLabels(file string) ([]string, error) {

	f, err := os.Open(file)

	if err != nil {
		return nil, fmt.Errorf("error opening labels file: %w", err)
	}

	defer f.Close()

	var labels []string
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {

		label := strings.TrimSpace(scanner.Text())

		if label == "" {
			continue
		}

		labels = append(labels, label)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading labels file: %w", err)
	}

	return labels, nil
}

// ClassMap builds the class name to class ID mapping used by the export
// and detection ingestion boundaries.  IDs follow the label's position
// in the list.  Duplicate names keep their first ID
func ClassMap(labels []string) map[string]int {

	m := make(map[string]int, len(labels))

	for i, label := range labels {
		if _, ok := m[label]; !ok {
			m[label] = i
		}
	}

	return m
}
