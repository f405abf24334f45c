// Package prompts builds the message sequences sent to LLM providers
// and post-processes their responses. It has no dependency on the llm
// package so the connector can depend on it without a cycle.
package prompts

import "fmt"

// Role identifies the sender of a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single prompt message.
type Message struct {
	Role    Role
	Content string
}

const dialectRules = `The pseudocode dialect follows "Introduction to Algorithms" (Cormen et al.):
- Assignment is written with the arrow ←, never = or :=.
- Relational operators are ≤ ≥ ≠ = < >.
- Loops: "for i ← 1 to n do" / "for i ← n downto 1 do" / "while cond do".
- Conditionals: "if cond then ... else ...".
- Blocks are indented; there is no "end" keyword.
- Array length is written A.length; arrays are 1-indexed: A[1] is the first element.
- Comments start with // and run to end of line.
- "break" exits the innermost loop; "return expr" exits the procedure.`

// TranslatePrompt builds the messages for translating a natural-language
// algorithm description into dialect pseudocode.
func TranslatePrompt(text string) []Message {
	system := "You are an expert on the book \"Introduction to Algorithms\" (Cormen et al.). " +
		"You convert natural-language algorithm descriptions into pseudocode in the book's exact style.\n\n" +
		dialectRules + "\n\n" +
		"Respond with ONLY the pseudocode, inside a single ``` code fence. No prose before or after."

	return []Message{
		{Role: RoleSystem, Content: system},
		{Role: RoleUser, Content: fmt.Sprintf("Convert this description to pseudocode:\n\n%s", text)},
	}
}

// ToCodePrompt builds the messages for translating dialect pseudocode
// into an executable Python function.
func ToCodePrompt(pseudocode string) []Message {
	system := "You are an expert algorithms programmer. You translate Cormen-style pseudocode " +
		"into a single idiomatic Python function.\n\n" +
		"Strict rules:\n" +
		"1. Respond with ONLY Python code inside a single ``` code fence — no explanations.\n" +
		"2. Translate precisely: ← becomes =, A.length becomes len(A), and ≤ ≥ ≠ become <= >= !=.\n" +
		"3. Adapt the 1-indexed loops and array accesses of the pseudocode to Python's 0-indexing."

	return []Message{
		{Role: RoleSystem, Content: system},
		{Role: RoleUser, Content: fmt.Sprintf("Translate this pseudocode:\n\n%s", pseudocode)},
	}
}

// SecondOpinionPrompt builds the messages asking the model to review a
// computed complexity analysis.
func SecondOpinionPrompt(pseudocode, bigO, bigOmega, bigTheta, justification string) []Message {
	system := "You are a computer-science professor reviewing an automated complexity analysis. " +
		"Give a concise expert second opinion: confirm the analysis if it is correct (adding an " +
		"interesting nuance if you can), or explain the error clearly and suggest the correction."

	user := fmt.Sprintf(`Pseudocode:

%s

Proposed analysis:
- Worst case (Big O): %s
- Best case (Big Omega): %s
- Tight bound (Big Theta): %s

Justification:
%s`, pseudocode, bigO, bigOmega, bigTheta, justification)

	return []Message{
		{Role: RoleSystem, Content: system},
		{Role: RoleUser, Content: user},
	}
}

// ClassifyPrompt builds the messages asking the model to name the
// algorithm-design paradigm of a pseudocode program.
func ClassifyPrompt(pseudocode string) []Message {
	system := "You are a computer scientist expert in algorithm-design paradigms. " +
		"Identify the main paradigm of the given pseudocode. Respond with only the paradigm name, " +
		"e.g. 'Divide and Conquer', 'Dynamic Programming', 'Greedy', 'Brute Force', 'Backtracking'. " +
		"If no standard paradigm fits, respond 'No standard paradigm identified'."

	return []Message{
		{Role: RoleSystem, Content: system},
		{Role: RoleUser, Content: pseudocode},
	}
}
