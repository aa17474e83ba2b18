package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agentstation/tripmap/pkg/collections"
	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/trip"
)

// Command is a parsed chat message.
type Command struct {
	Name string
	Args string
}

// ParseCommand splits "/name@botname args" into its parts. Text that is
// not a command yields ok == false.
func ParseCommand(text string) (Command, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return Command{}, false
	}
	head, args, _ := strings.Cut(text, " ")
	name, _, _ := strings.Cut(strings.TrimPrefix(head, "/"), "@")
	if name == "" {
		return Command{}, false
	}
	return Command{Name: strings.ToLower(name), Args: strings.TrimSpace(args)}, true
}

// ParseExpense parses "<jpy> [category] <description>". The amount may
// carry thousands separators or a ¥ sign. Without a known category the
// expense is filed under 其他.
func ParseExpense(args string) (collections.ExpenseInput, error) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return collections.ExpenseInput{}, errors.NewValidationError("expense", args,
			"usage: /expense <jpy> [category] <description>")
	}

	raw := strings.NewReplacer(",", "", "¥", "", "円", "").Replace(fields[0])
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil || amount <= 0 {
		return collections.ExpenseInput{}, errors.NewValidationError("amount", fields[0],
			fmt.Sprintf("%q is not a positive yen amount", fields[0]))
	}

	category, rest := trip.CategoryOther, fields[1:]
	if trip.IsExpenseCategory(rest[0]) {
		category, rest = rest[0], rest[1:]
	}
	if len(rest) == 0 {
		return collections.ExpenseInput{}, errors.NewValidationError("description", "", "description is required")
	}

	return collections.ExpenseInput{
		Category:    category,
		AmountJPY:   amount,
		Description: strings.Join(rest, " "),
	}, nil
}
