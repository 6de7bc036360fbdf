package dataset

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DumpKind selects how brace groups of a text dump are interpreted.
type DumpKind string

const (
	// DumpProbabilities keeps every other brace group of a line, one per
	// skill.
	DumpProbabilities DumpKind = "probabilities"
	// DumpProfiles keeps the first brace group of a line.
	DumpProfiles DumpKind = "profiles"
)

// ParseDumpKind validates s.
func ParseDumpKind(s string) (DumpKind, error) {
	switch DumpKind(strings.ToLower(strings.TrimSpace(s))) {
	case DumpProbabilities:
		return DumpProbabilities, nil
	case DumpProfiles:
		return DumpProfiles, nil
	default:
		return "", fmt.Errorf("unknown dump kind %q (want probabilities or profiles)", s)
	}
}

var braceGroup = regexp.MustCompile(`\{+(.*?)\}+`)

// ParseDump extracts brace groups such as "{0.1,0.9}" from every line of r.
// Values are rounded to two decimals. The result is indexed
// [line][group][value]; for DumpProfiles each line has a single group.
func ParseDump(r io.Reader, kind DumpKind) ([][][]float64, error) {
	var out [][][]float64
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for line := 1; sc.Scan(); line++ {
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		var groups []string
		for _, m := range braceGroup.FindAllStringSubmatch(text, -1) {
			groups = append(groups, m[1])
		}
		if len(groups) == 0 {
			return nil, fmt.Errorf("line %d: no brace group", line)
		}

		switch kind {
		case DumpProbabilities:
			kept := groups[:0]
			for i := 0; i < len(groups); i += 2 {
				kept = append(kept, groups[i])
			}
			groups = kept
		case DumpProfiles:
			groups = groups[:1]
		default:
			return nil, fmt.Errorf("unknown dump kind %q", kind)
		}

		row := make([][]float64, len(groups))
		for g, body := range groups {
			vals, err := parseRounded(body)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			row[g] = vals
		}
		out = append(out, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan dump: %w", err)
	}
	return out, nil
}

func parseRounded(body string) ([]float64, error) {
	parts := strings.Split(body, ",")
	vals := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", p, err)
		}
		vals[i] = math.RoundToEven(v*100) / 100
	}
	return vals, nil
}
