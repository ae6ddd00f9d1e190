// ABOUTME: Canned output text for the builtin pad commands
// ABOUTME: The vim confirmations are exact; the rest are static placeholders

package commands

// Confirmation lines inserted by the vim enable/disable keywords.
const (
	VimEnabledText  = "Vim mode enabled!"
	VimDisabledText = "Vim mode disabled!"
)

// Static placeholder outputs for the assistant-flavored commands. There is
// no model behind the pad.
const (
	ExplainText = "This is where an explanation of the text above would appear.\n" +
		"mdpad has no assistant behind it, so you get this stub instead."

	FixText = "This is where suggested fixes would appear.\n" +
		"Nothing inspects your text; the output is canned."

	DocText = "This is where a generated doc comment would appear.\n" +
		"Write your own for now."
)
