// Package shell implements the interactive text menu.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"expense-tracker/internal/core"
	applog "expense-tracker/internal/log"
)

// ExpenseService is the subset of the service the menu drives.
type ExpenseService interface {
	AddExpense(ctx context.Context, amountInput, category, description string) (core.Expense, error)
	ListExpenses() []core.Expense
	MonthlySummary(ctx context.Context) []core.GroupTotal
	CategorySummary(ctx context.Context) []core.GroupTotal
}

const menu = `
Expense Tracker
1. Add Expense
2. View Expenses
3. Monthly Summary
4. Category Summary
5. Exit
`

const (
	promptChoice      = "Choose an option: "
	promptAmount      = "Enter amount: "
	promptCategory    = "Enter category (e.g., Food, Transport, Entertainment): "
	promptDescription = "Enter description: "

	msgAdded     = "Expense added successfully!"
	msgEmpty     = "No expenses recorded yet."
	msgInvalid   = "Invalid option. Please try again."
	msgGoodbye   = "Exiting Expense Tracker. Goodbye!"
	headMonthly  = "\nMonthly Summary:"
	headCategory = "\nCategory-wise Summary:"
)

// errEndOfInput ends the loop quietly when the input stream is exhausted.
var errEndOfInput = errors.New("end of input")

type Shell struct {
	service ExpenseService
	in      *bufio.Reader
	out     io.Writer
	logger  *applog.Logger
}

func New(service ExpenseService, in io.Reader, out io.Writer, logger *applog.Logger) *Shell {
	if logger == nil {
		logger = applog.Discard()
	}
	return &Shell{
		service: service,
		in:      bufio.NewReader(in),
		out:     out,
		logger:  logger.WithComponent(applog.ComponentShell),
	}
}

// Run shows the menu and dispatches choices until the user exits or input
// ends. Errors other than a rejected amount stop the loop and are returned.
func (s *Shell) Run(ctx context.Context) error {
	for {
		fmt.Fprint(s.out, menu)
		choice, err := s.prompt(promptChoice)
		if err != nil {
			return s.finish(ctx, err)
		}
		choice = strings.TrimSpace(choice)
		s.logger.DebugContext(ctx, "Menu choice", applog.FieldChoice, choice)

		switch choice {
		case "1":
			if err := s.addExpense(ctx); err != nil {
				return s.finish(ctx, err)
			}
		case "2":
			s.viewExpenses()
		case "3":
			s.printSummary(headMonthly, s.service.MonthlySummary(ctx))
		case "4":
			s.printSummary(headCategory, s.service.CategorySummary(ctx))
		case "5":
			fmt.Fprintln(s.out, msgGoodbye)
			return nil
		default:
			fmt.Fprintln(s.out, msgInvalid)
		}
	}
}

func (s *Shell) finish(ctx context.Context, err error) error {
	if errors.Is(err, errEndOfInput) {
		s.logger.InfoContext(ctx, "Input closed, leaving menu")
		return nil
	}
	return err
}

func (s *Shell) addExpense(ctx context.Context) error {
	amount, err := s.prompt(promptAmount)
	if err != nil {
		return err
	}
	category, err := s.prompt(promptCategory)
	if err != nil {
		return err
	}
	description, err := s.prompt(promptDescription)
	if err != nil {
		return err
	}

	if _, err := s.service.AddExpense(ctx, amount, category, description); err != nil {
		if errors.Is(err, core.ErrInvalidAmount) {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return nil
		}
		return err
	}
	fmt.Fprintln(s.out, msgAdded)
	return nil
}

func (s *Shell) viewExpenses() {
	expenses := s.service.ListExpenses()
	if len(expenses) == 0 {
		fmt.Fprintln(s.out, msgEmpty)
		return
	}
	for _, e := range expenses {
		fmt.Fprintf(s.out, "Amount: %s, Category: %s, Description: %s, Date: %s\n",
			e.Amount.String(), e.Category, e.Description, e.Date)
	}
}

func (s *Shell) printSummary(header string, rows []core.GroupTotal) {
	fmt.Fprintln(s.out, header)
	for _, r := range rows {
		fmt.Fprintf(s.out, "%s: $%s\n", r.Key, core.FormatTotal(r.Amount))
	}
}

// prompt prints label and reads one line without its line terminator.
func (s *Shell) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				return "", errEndOfInput
			}
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
