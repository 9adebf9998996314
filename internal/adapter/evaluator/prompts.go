package evaluator

import "fmt"

const evaluationPromptTemplate = `
You are an expert Java code evaluator specializing in design patterns. Evaluate the following code submission:

PROBLEM DESCRIPTION:
%s

EXPECTED DESIGN PATTERN:
%s

USER CODE SUBMISSION:
` + "```java" + `
%s
` + "```" + `

Please provide a thorough evaluation with the following structure (return as valid JSON):
{
  "score": <numerical_score_between_0_and_100>,
  "strengths": [<list_of_3_to_5_strengths>],
  "improvements": [<list_of_2_to_4_improvement_suggestions>],
  "design_pattern_implementation": <description_of_how_well_the_design_pattern_was_implemented>,
  "code_quality_analysis": <analysis_of_code_quality>,
  "additional_feedback": <any_other_relevant_feedback>
}

The score should be primarily based on how correctly the design pattern is implemented (70%% weight)
and code quality (30%% weight). Be fair but appropriately critical.
`

const solutionPromptTemplate = `
You are an expert Java developer specializing in design patterns. Generate a complete, optimal solution for the following design pattern problem:

PROBLEM DESCRIPTION:
%s

DESIGN PATTERN TO IMPLEMENT:
%s

Please provide a complete, working Java solution that:
1. Correctly implements the %s design pattern
2. Follows best practices for object-oriented design
3. Includes helpful comments explaining key parts of the implementation
4. Demonstrates the pattern in action with a simple example
5. Is well-structured and uses appropriate naming conventions

Return ONLY the Java code without any explanations outside of code comments.
`

func buildEvaluationPrompt(code, problemContext, designPattern string) string {
	return fmt.Sprintf(evaluationPromptTemplate, problemContext, designPattern, code)
}

func buildSolutionPrompt(problemContext, designPattern string) string {
	return fmt.Sprintf(solutionPromptTemplate, problemContext, designPattern, designPattern)
}

// solutionHeader prefixes generated code with the pattern and a shortened problem statement.
func solutionHeader(problemContext, designPattern, code string) string {
	return fmt.Sprintf(`/**
 * Optimal implementation of %s design pattern
 *
 * Problem: %s...
 */

%s`, designPattern, firstRunes(problemContext, 100), code)
}

func placeholderSolution(designPattern string) string {
	return fmt.Sprintf(`/**
 * Error occurred while generating optimal solution.
 * Here's a generic structure for the %[1]s pattern.
 */

// Generic %[1]s pattern implementation
public class Solution {
    public static void main(String[] args) {
        // This would normally show a proper implementation of the %[1]s pattern
        System.out.println("An optimal %[1]s implementation would be shown here");
    }
}`, designPattern)
}

func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
