package mdtest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// InputType represents the type of input code fence in a test
type InputType string

const (
	InputTypeLimeExpr    InputType = "lime-expr"
	InputTypeLimeProgram InputType = "lime-program"
)

// AssertionType represents the type of assertion code fence in a test
type AssertionType string

const (
	AssertionTypeAST          AssertionType = "ast"
	AssertionTypeExecute      AssertionType = "execute"
	AssertionTypeCompileError AssertionType = "compile-error"
)

// Assertion is a single assertion attached to a test case. For ast
// assertions, Pattern holds the parsed s-expression.
type Assertion struct {
	Type    AssertionType
	Content string
	Pattern *Node
}

// TestCase is a complete test case extracted from a Markdown document: a
// `## Test: <name>` heading, one input fence, and one or more assertion
// fences.
type TestCase struct {
	Name       string
	Input      string
	InputType  InputType
	Assertions []Assertion
}

// ExtractTestCases parses a Markdown document and collects its test cases.
// Fences with unknown languages, fences outside a test heading, duplicate
// input fences, and test cases missing an input or an assertion are errors.
func ExtractTestCases(markdownContent string) ([]TestCase, error) {
	md := goldmark.New()
	source := []byte(markdownContent)

	doc := md.Parser().Parse(text.NewReader(source))

	var testCases []TestCase
	var current *TestCase

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			headingText := extractTextFromNode(n, source)
			if strings.HasPrefix(headingText, "Test: ") {
				if current != nil {
					if err := validateTestCase(current); err != nil {
						return ast.WalkStop, err
					}
					testCases = append(testCases, *current)
				}
				current = &TestCase{Name: strings.TrimPrefix(headingText, "Test: ")}
			}

		case *ast.FencedCodeBlock:
			language := string(n.Language(source))
			content := strings.TrimRight(extractCodeBlockContent(n, source), "\n")
			line := lineNumber(n, source)

			if language == "" {
				// Plain code blocks are allowed anywhere as documentation.
				return ast.WalkContinue, nil
			}
			if !isInputFence(language) && !isAssertionFence(language) {
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence language %q", line, language)
			}
			if current == nil {
				return ast.WalkStop, fmt.Errorf("line %d: %s fence found outside of test case", line, language)
			}

			if isInputFence(language) {
				if current.Input != "" {
					return ast.WalkStop, fmt.Errorf("line %d: multiple input fences in test %q", line, current.Name)
				}
				current.Input = content
				current.InputType = InputType(language)
				return ast.WalkContinue, nil
			}

			assertion := Assertion{Type: AssertionType(language), Content: content}
			if assertion.Type == AssertionTypeAST {
				pattern, parseErr := Parse(assertion.Content)
				if parseErr != nil {
					return ast.WalkStop, fmt.Errorf("line %d: bad ast assertion in test %q: %w", line, current.Name, parseErr)
				}
				assertion.Pattern = pattern
			}
			current.Assertions = append(current.Assertions, assertion)
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking markdown AST: %w", err)
	}

	if current != nil {
		if err := validateTestCase(current); err != nil {
			return nil, err
		}
		testCases = append(testCases, *current)
	}

	return testCases, nil
}

func extractTextFromNode(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := n.(*ast.Text); ok {
				buf.Write(t.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func extractCodeBlockContent(codeBlock *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	for i := 0; i < codeBlock.Lines().Len(); i++ {
		line := codeBlock.Lines().At(i)
		buf.Write(line.Value(source))
	}
	return buf.String()
}

func isInputFence(language string) bool {
	return language == string(InputTypeLimeExpr) || language == string(InputTypeLimeProgram)
}

func isAssertionFence(language string) bool {
	return language == string(AssertionTypeAST) ||
		language == string(AssertionTypeExecute) ||
		language == string(AssertionTypeCompileError)
}

func validateTestCase(tc *TestCase) error {
	if tc.Input == "" {
		return fmt.Errorf("test %q has no input fence", tc.Name)
	}
	if len(tc.Assertions) == 0 {
		return fmt.Errorf("test %q has no assertion fences", tc.Name)
	}
	return nil
}

func lineNumber(node ast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	start := node.Lines().At(0).Start
	line := 1
	for i := 0; i < start && i < len(source); i++ {
		if source[i] == '\n' {
			line++
		}
	}
	return line
}
