package tester

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/cfgkit/cfgkit/driver"
	"github.com/cfgkit/cfgkit/spec"
)

// TestCase is one expectation: a sentence and whether the grammar must
// accept it.
type TestCase struct {
	LineNumber int
	Sentence   string
	Expected   bool
}

// ParseTestCases reads an expectation file. Each non-empty line holds a
// sentence and a verdict separated by a tab:
//
//	id + id $	yes
//	id + $	no
//
// Lines starting with # are comments.
func ParseTestCases(src io.Reader) ([]*TestCase, error) {
	var cases []*TestCase
	s := bufio.NewScanner(src)
	lineNum := 0
	for s.Scan() {
		lineNum++
		line := s.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		sep := strings.LastIndexByte(line, '\t')
		if sep < 0 {
			return nil, fmt.Errorf("line %v: a test case needs a sentence and a verdict separated by a tab", lineNum)
		}
		sentence := line[:sep]
		verdict := strings.TrimSpace(line[sep+1:])

		var expected bool
		switch verdict {
		case "yes":
			expected = true
		case "no":
			expected = false
		default:
			return nil, fmt.Errorf("line %v: a verdict must be either yes or no: %v", lineNum, verdict)
		}

		cases = append(cases, &TestCase{
			LineNumber: lineNum,
			Sentence:   sentence,
			Expected:   expected,
		})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return cases, nil
}

type TestResult struct {
	Case     *TestCase
	Accepted bool
	Error    error
}

func (r *TestResult) Passed() bool {
	return r.Error == nil && r.Accepted == r.Case.Expected
}

func (r *TestResult) String() string {
	if r.Error != nil {
		return fmt.Sprintf("Failed line %v: %v: %v", r.Case.LineNumber, r.Case.Sentence, r.Error)
	}
	if !r.Passed() {
		return fmt.Sprintf("Failed line %v: %v: expected %v, got %v", r.Case.LineNumber, r.Case.Sentence, verdict(r.Case.Expected), verdict(r.Accepted))
	}
	return fmt.Sprintf("Passed line %v: %v", r.Case.LineNumber, r.Case.Sentence)
}

func verdict(accepted bool) string {
	if accepted {
		return "yes"
	}
	return "no"
}

type Tester struct {
	recog *driver.Recognizer
	cases []*TestCase
}

func NewTester(gram *spec.CompiledGrammar, method driver.Method, cases []*TestCase) (*Tester, error) {
	recog, err := driver.NewRecognizer(gram, method)
	if err != nil {
		return nil, err
	}
	return &Tester{
		recog: recog,
		cases: cases,
	}, nil
}

func (t *Tester) Run() []*TestResult {
	var rs []*TestResult
	for _, c := range t.cases {
		accepted, _, err := t.recog.Recognize(c.Sentence)
		rs = append(rs, &TestResult{
			Case:     c,
			Accepted: accepted,
			Error:    err,
		})
	}
	return rs
}
