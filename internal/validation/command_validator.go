package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
)

// commandCorrections maps each shell command to misspellings and synonyms
// users commonly type instead. Order matters: the first match wins.
var commandCorrections = []struct {
	command string
	aliases []string
}{
	{"list", []string{"lst", "lsit", "lis"}},
	{"todo", []string{"tdo", "tod", "to-do"}},
	{"deadline", []string{"deadlin", "dedline", "dead-line"}},
	{"event", []string{"evnt", "evetn", "ev"}},
	{"mark", []string{"mrk", "mak"}},
	{"unmark", []string{"unmrk", "unm"}},
	{"delete", []string{"del", "delet", "remove", "rm"}},
	{"find", []string{"fnd", "search", "look"}},
	{"schedule", []string{"sched", "schedul", "timetable"}},
	{"bye", []string{"exit", "quit", "close"}},
}

// CommandResult is the outcome of checking one line of shell input.
type CommandResult struct {
	Valid       bool
	Message     string
	Suggestions []string
}

// CommandValidator checks shell input before it is dispatched and suggests
// corrections for mistyped commands.
type CommandValidator struct {
	known map[string]bool
}

// NewCommandValidator accepts the given command names verbatim. Anything
// else is checked against the correction table.
func NewCommandValidator(known ...string) *CommandValidator {
	cv := &CommandValidator{known: make(map[string]bool)}
	for _, c := range commandCorrections {
		cv.known[c.command] = true
	}
	for _, k := range known {
		cv.known[strings.ToLower(k)] = true
	}
	return cv
}

// Correct returns the command the user most likely meant, if any.
// An alias within one edit, or the command itself within two, matches.
func (cv *CommandValidator) Correct(word string) (string, bool) {
	word = strings.ToLower(word)
	if word == "" || cv.known[word] {
		return "", false
	}
	for _, c := range commandCorrections {
		for _, alias := range c.aliases {
			if levenshtein.ComputeDistance(word, alias) <= 1 {
				return c.command, true
			}
		}
		if levenshtein.ComputeDistance(word, c.command) <= 2 {
			return c.command, true
		}
	}
	return "", false
}

// Validate checks one line of shell input.
func (cv *CommandValidator) Validate(input string) CommandResult {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return CommandResult{
			Message:     "Command cannot be empty!",
			Suggestions: []string{"Try: 'list' to see all tasks", "'help' for available commands"},
		}
	}

	parts := strings.Fields(strings.ToLower(trimmed))
	command := parts[0]

	if corrected, ok := cv.Correct(command); ok {
		rest := strings.TrimSpace(trimmed[len(strings.Fields(trimmed)[0]):])
		try := corrected
		if rest != "" {
			try += " " + rest
		}
		return CommandResult{
			Message:     fmt.Sprintf("Did you mean '%s'?", corrected),
			Suggestions: []string{fmt.Sprintf("Try: '%s'", try)},
		}
	}

	if !cv.known[command] {
		return CommandResult{
			Message:     fmt.Sprintf("I don't know what '%s' means.", command),
			Suggestions: []string{"Type 'help' for available commands"},
		}
	}

	return validateCommandFormat(command, parts, trimmed)
}

func validateCommandFormat(command string, parts []string, input string) CommandResult {
	switch command {
	case "deadline":
		if !strings.Contains(input, " /by ") {
			return CommandResult{
				Message: "Deadline tasks need a '/by' clause to specify the deadline!",
				Suggestions: []string{
					"deadline <description> /by <date>",
					"Example: deadline Submit report /by 15/12/2024 1700",
				},
			}
		}
	case "event":
		if !strings.Contains(input, " /from ") || !strings.Contains(input, " /to ") {
			return CommandResult{
				Message: "Event tasks need both '/from' and '/to' clauses!",
				Suggestions: []string{
					"event <description> /from <start> /to <end>",
					"Example: event Team meeting /from 15/12/2024 1000 /to 15/12/2024 1100",
				},
			}
		}
	case "mark", "unmark", "delete":
		if len(parts) < 2 {
			return CommandResult{
				Message: fmt.Sprintf("Please specify which task to %s!", command),
				Suggestions: []string{
					fmt.Sprintf("%s <task_number>", command),
					"Example: " + command + " 1",
				},
			}
		}
		if _, err := strconv.Atoi(parts[1]); err != nil {
			return CommandResult{
				Message: "Task number must be a valid number!",
				Suggestions: []string{
					fmt.Sprintf("%s <task_number>", command),
					"Task number must be a positive integer",
				},
			}
		}
	case "find":
		if len(parts) < 2 {
			return CommandResult{
				Message:     "Please specify what to search for!",
				Suggestions: []string{"find <keyword>", "Example: find meeting"},
			}
		}
	case "schedule", "on":
		if len(parts) < 2 {
			return CommandResult{
				Message: "Please specify a date!",
				Suggestions: []string{
					command + " <date>",
					"Example: " + command + " 15/12/2024",
					"Example: " + command + " today",
				},
			}
		}
	}
	return CommandResult{Valid: true, Message: "Valid command"}
}
