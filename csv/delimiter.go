package csv

import (
	"bufio"
	"io"
	"strings"

	"hermannm.dev/wrap"
)

var delimitersToCheck = []rune{',', ';', '\t', ' ', '|'}

// Deduces the field delimiter of the given CSV file by counting candidate delimiters in its first
// maxRowsToCheck lines, favoring the candidate that occurs the same number of times on every line.
func deduceFieldDelimiter(csvFile io.ReadSeeker, maxRowsToCheck int) (delimiter rune, err error) {
	// Resets reader position in file before returning, so its data can be read subsequently
	defer func() {
		if _, seekErr := csvFile.Seek(0, io.SeekStart); seekErr != nil {
			err = wrap.Error(seekErr, "failed to reset CSV reader after deducing field delimiter")
		}
	}()

	candidates := make([]delimiterCandidate, len(delimitersToCheck))
	for i, delimiter := range delimitersToCheck {
		candidates[i] = delimiterCandidate{delimiter: delimiter, lowestCount: -1, highestCount: -1}
	}

	scanner := bufio.NewScanner(csvFile)
	for i := 0; scanner.Scan() && i < maxRowsToCheck; i++ {
		line := scanner.Text()

		for i := range candidates {
			candidates[i].countOccurrences(line)
		}
	}

	best := candidates[0]
	for _, candidate := range candidates[1:] {
		if candidate.betterThan(best) {
			best = candidate
		}
	}
	return best.delimiter, nil
}

type delimiterCandidate struct {
	delimiter    rune
	lowestCount  int
	highestCount int
}

func (candidate *delimiterCandidate) countOccurrences(line string) {
	count := strings.Count(line, string(candidate.delimiter))

	if candidate.highestCount == -1 || count > candidate.highestCount {
		candidate.highestCount = count
	}
	if candidate.lowestCount == -1 || count < candidate.lowestCount {
		candidate.lowestCount = count
	}
}

func (candidate delimiterCandidate) betterThan(other delimiterCandidate) bool {
	consistent := candidate.lowestCount == candidate.highestCount
	otherConsistent := other.lowestCount == other.highestCount

	switch {
	case consistent && otherConsistent:
		return candidate.highestCount > other.highestCount
	case consistent:
		return candidate.highestCount > 0
	case otherConsistent:
		return false
	default:
		// Neither candidate occurs consistently; favor the one present on every line, then the
		// more frequent one.
		return candidate.highestCount > other.highestCount &&
			(candidate.lowestCount != 0 || other.lowestCount == 0)
	}
}
