package dataset

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// SkillQuestions maps a skill name to its question indices, in key-file
// order.
type SkillQuestions map[string][]int

// Skills returns the skill names sorted.
func (sq SkillQuestions) Skills() []string {
	names := make([]string, 0, len(sq))
	for s := range sq {
		names = append(names, s)
	}
	sort.Strings(names)
	return names
}

// ReadKeys parses a keys file whose whitespace-separated rows hold the
// question index in the first field and the skill name in the third.
func ReadKeys(r io.Reader) (SkillQuestions, error) {
	sq := make(SkillQuestions)
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if len(fields) < 3 {
			return nil, fmt.Errorf("keys line %d: want at least 3 fields, got %d", line, len(fields))
		}
		q, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("keys line %d: question: %w", line, err)
		}
		sq[fields[2]] = append(sq[fields[2]], q)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan keys: %w", err)
	}
	return sq, nil
}

// ReadAnswers parses "id, a0, a1, ..." rows and drops the id column.
func ReadAnswers(r io.Reader) ([][]float64, error) {
	rows, err := readFloatRows(r)
	if err != nil {
		return nil, err
	}
	out := make([][]float64, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("answers row %d: no answers after id", i+1)
		}
		out[i] = row[1:]
	}
	return out, nil
}

// SkillAnswers is the answer matrix restricted to one skill's questions.
type SkillAnswers struct {
	Skill     string
	Questions []int
	Answers   [][]float64
}

// Header returns the column names, "Q<index>" per question.
func (s SkillAnswers) Header() []string {
	h := make([]string, len(s.Questions))
	for i, q := range s.Questions {
		h[i] = "Q" + strconv.Itoa(q)
	}
	return h
}

// SplitBySkill selects, for every skill, the answer columns of its
// questions. Skills come back sorted by name.
func SplitBySkill(answers [][]float64, keys SkillQuestions) ([]SkillAnswers, error) {
	out := make([]SkillAnswers, 0, len(keys))
	for _, skill := range keys.Skills() {
		qs := keys[skill]
		sa := SkillAnswers{Skill: skill, Questions: qs, Answers: make([][]float64, len(answers))}
		for i, row := range answers {
			sel := make([]float64, len(qs))
			for c, q := range qs {
				if q < 0 || q >= len(row) {
					return nil, fmt.Errorf("skill %s: question %d outside %d answer columns", skill, q, len(row))
				}
				sel[c] = row[q]
			}
			sa.Answers[i] = sel
		}
		out = append(out, sa)
	}
	return out, nil
}
