// Package prompt assembles the instruction sent to the text-generation model.
package prompt

import (
	"fmt"
	"strings"

	"github.com/codelens/api/internal/models"
)

// ExampleSeparator delimits the worked examples block
const ExampleSeparator = "####"

// SampleExplanations are the two worked examples embedded in every prompt
const SampleExplanations = `----------------------------
Example 1: Python Code Snippet
def multiply_elements(lst, factor):
    return [x * factor for x in lst]

numbers = [1, 2, 3, 4]
result = multiply_elements(numbers, 3)
print(result)
Correct output: [3, 6, 9, 12]
Code Explanation: The function ` + "`multiply_elements`" + ` multiplies each element in the list ` + "`lst`" + ` by the given ` + "`factor`" + `. The list comprehension ` + "`[x * factor for x in lst]`" + ` creates a new list with each element multiplied by ` + "`factor`" + `. In this case, each number in ` + "`numbers`" + ` is multiplied by ` + "`3`" + `, resulting in ` + "`[3, 6, 9, 12]`" + `.
-----------------------------

Example 2: Python Code Snippet
def filter_even_numbers(nums):
    return [num for num in nums if num % 2 == 0]

values = [10, 15, 20, 25, 30]
filtered = filter_even_numbers(values)
print(filtered)
Correct output: [10, 20, 30]
Code Explanation: The function ` + "`filter_even_numbers`" + ` filters out the odd numbers from the list ` + "`nums`" + `, returning only the even numbers. The list comprehension ` + "`[num for num in nums if num % 2 == 0]`" + ` includes only numbers divisible by ` + "`2`" + `. Thus, from the list ` + "`values`" + `, the even numbers ` + "`[10, 20, 30]`" + ` are returned.
------------------------------`

// Task returns the instruction sentence for a request type
func Task(t models.RequestType) string {
	switch t {
	case models.RequestExplainer:
		return "explain the Code Snippet step-by-step"
	case models.RequestRefactoring:
		return "provide refactoring suggestions and improvements"
	case models.RequestUnitTests:
		return "generate unit test cases for the code"
	case models.RequestQualityMetrics:
		return "provide code quality metrics"
	}
	panic(fmt.Sprintf("prompt: unhandled request type %q", t))
}

// Build assembles the full instruction for a submission. The snippet is
// fenced with a backtick run longer than any run it contains.
func Build(sub models.CodeSubmission) string {
	fence := Fence(sub.Code)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Your task is to act as a %s Code %s.\n", sub.Language, sub.RequestType)
	sb.WriteString("I'll give you a Code Snippet.\n")
	fmt.Fprintf(&sb, "Your job is to %s.\n", Task(sub.RequestType))
	sb.WriteString("Break down the code into as many steps as possible.\n")
	sb.WriteString("Share intermediate checkpoints & steps along with results.\n")
	fmt.Fprintf(&sb, "Explanation detail level: %s\n", sub.DetailLevel)
	fmt.Fprintf(&sb, "Few good examples of %s code output between %s separator:\n", sub.Language, ExampleSeparator)
	sb.WriteString(ExampleSeparator + "\n")
	sb.WriteString(SampleExplanations + "\n")
	sb.WriteString(ExampleSeparator + "\n")
	fmt.Fprintf(&sb, "Code Snippet is shared below, delimited with %s:\n", fenceName(fence))
	sb.WriteString(fence + "\n")
	sb.WriteString(sub.Code)
	if !strings.HasSuffix(sub.Code, "\n") {
		sb.WriteByte('\n')
	}
	sb.WriteString(fence + "\n")
	return sb.String()
}

// Fence returns the shortest backtick fence (at least three) that does not
// occur inside code
func Fence(code string) string {
	longest, run := 0, 0
	for _, r := range code {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	n := 3
	if longest >= n {
		n = longest + 1
	}
	return strings.Repeat("`", n)
}

func fenceName(fence string) string {
	if len(fence) == 3 {
		return "triple backticks"
	}
	return fmt.Sprintf("a line of %d backticks", len(fence))
}
