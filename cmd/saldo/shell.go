package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"saldo/internal/core"
	"saldo/internal/services"
)

const menu = `
1: Check balance
2: Deposit
3: Withdraw
4: Show transaction history
5: Show transaction history by day
6: Show transaction history by month
7: Show transaction history by year
8: Save transactions
9: Load transactions
0: Exit`

// Shell is the interactive menu loop around the ledger service. It owns
// no ledger state; every choice maps onto exactly one service call.
type Shell struct {
	svc *services.LedgerService
	in  *bufio.Scanner
	out io.Writer

	// defaultID is offered when the save/load prompt is left empty.
	defaultID string
}

func NewShell(svc *services.LedgerService, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		svc: svc,
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Run loops until the user exits or input ends. Ledger errors are
// reported and the loop continues; only I/O failures end the session.
func (s *Shell) Run(ctx context.Context) error {
	for {
		fmt.Fprintln(s.out, menu)
		fmt.Fprint(s.out, "Choose an action to perform: ")
		choice, err := s.readLine()
		if err != nil {
			return nil // input exhausted, treat like exit
		}

		switch choice {
		case "1":
			fmt.Fprintf(s.out, "Balance: %s\n", core.FormatCents(s.svc.Balance()))
		case "2":
			s.deposit(ctx)
		case "3":
			s.withdraw(ctx)
		case "4":
			s.history()
		case "5":
			s.historyByDay()
		case "6":
			s.historyByMonth()
		case "7":
			s.historyByYear()
		case "8":
			s.save(ctx)
		case "9":
			s.load(ctx)
		case "0":
			fmt.Fprintln(s.out, "Exiting...")
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid choice. Please try again.")
		}
	}
}

func (s *Shell) deposit(ctx context.Context) {
	amount, err := s.promptAmount()
	if err != nil {
		return
	}
	if err := s.svc.Deposit(ctx, amount); err != nil {
		// Invalid deposits are a silent no-op; the prompt already
		// filtered non-positive input.
		return
	}
	fmt.Fprintf(s.out, "Deposited: %s\n", core.FormatCents(amount))
}

func (s *Shell) withdraw(ctx context.Context) {
	amount, err := s.promptAmount()
	if err != nil {
		return
	}
	if err := s.svc.Withdraw(ctx, amount); err != nil {
		fmt.Fprintln(s.out, "Insufficient funds or invalid amount.")
		return
	}
	fmt.Fprintf(s.out, "Withdrawn: %s\n", core.FormatCents(amount))
}

func (s *Shell) history() {
	txs, err := s.svc.History()
	if err != nil {
		if errors.Is(err, core.ErrNoTransactions) {
			fmt.Fprintln(s.out, "No transactions executed.")
			return
		}
		fmt.Fprintf(s.out, "Could not list transactions: %v\n", err)
		return
	}
	s.printTransactions(txs)
}

func (s *Shell) historyByDay() {
	date, err := s.promptDate()
	if err != nil {
		return
	}
	fmt.Fprintf(s.out, "Transactions on %s:\n", date)
	s.printTransactions(s.svc.HistoryOnDate(date))
}

func (s *Shell) historyByMonth() {
	year, err := s.promptYear()
	if err != nil {
		return
	}
	month, err := s.promptMonth()
	if err != nil {
		return
	}
	fmt.Fprintf(s.out, "Transactions in %04d-%02d:\n", year, month)
	s.printTransactions(s.svc.HistoryInMonth(year, month))
}

func (s *Shell) historyByYear() {
	year, err := s.promptYear()
	if err != nil {
		return
	}
	fmt.Fprintf(s.out, "Transactions in %d:\n", year)
	s.printTransactions(s.svc.HistoryInYear(year))
}

func (s *Shell) save(ctx context.Context) {
	id, err := s.promptID()
	if err != nil {
		return
	}
	if err := s.svc.Save(ctx, id); err != nil {
		fmt.Fprintf(s.out, "Could not save to file: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, "Transactions have been saved to file.")
}

func (s *Shell) load(ctx context.Context) {
	id, err := s.promptID()
	if err != nil {
		return
	}
	if err := s.svc.Load(ctx, id); err != nil {
		fmt.Fprintf(s.out, "Could not load from file: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, "Transactions have been loaded from file.")
}

func (s *Shell) printTransactions(txs []core.Transaction) {
	for _, tx := range txs {
		fmt.Fprintf(s.out, "Amount: %s Date: %s\n", core.FormatCents(tx.Amount), tx.Date)
	}
}

// promptAmount re-prompts until a positive decimal amount is entered.
func (s *Shell) promptAmount() (int64, error) {
	for {
		fmt.Fprint(s.out, "Enter amount: ")
		line, err := s.readLine()
		if err != nil {
			return 0, err
		}
		cents, err := core.ParseAmountToCents(line)
		if err != nil {
			fmt.Fprintln(s.out, "Invalid input. Please enter a valid positive amount.")
			continue
		}
		return cents, nil
	}
}

// promptDate re-prompts until a YYYY-MM-DD date is entered.
func (s *Shell) promptDate() (core.Date, error) {
	for {
		fmt.Fprint(s.out, "Enter date (YYYY-MM-DD): ")
		line, err := s.readLine()
		if err != nil {
			return core.Date{}, err
		}
		date, err := core.ParseDate(line)
		if err != nil {
			fmt.Fprintln(s.out, "Invalid date format. Please try again.")
			continue
		}
		return date, nil
	}
}

func (s *Shell) promptYear() (int, error) {
	for {
		fmt.Fprint(s.out, "Enter year (e.g. 2024): ")
		line, err := s.readLine()
		if err != nil {
			return 0, err
		}
		year, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(s.out, "Invalid input. Please enter a valid year.")
			continue
		}
		return year, nil
	}
}

// promptMonth re-prompts until a month in 1-12 is entered; the ledger
// itself accepts any value, the range check lives here.
func (s *Shell) promptMonth() (int, error) {
	for {
		fmt.Fprint(s.out, "Enter month (1-12): ")
		line, err := s.readLine()
		if err != nil {
			return 0, err
		}
		month, err := strconv.Atoi(line)
		if err != nil || month < 1 || month > 12 {
			fmt.Fprintln(s.out, "Invalid input. Please enter a valid month.")
			continue
		}
		return month, nil
	}
}

func (s *Shell) promptID() (string, error) {
	for {
		prompt := "Enter filename: "
		if s.defaultID != "" {
			prompt = fmt.Sprintf("Enter filename [%s]: ", s.defaultID)
		}
		fmt.Fprint(s.out, prompt)
		line, err := s.readLine()
		if err != nil {
			return "", err
		}
		if line == "" {
			if s.defaultID != "" {
				return s.defaultID, nil
			}
			continue
		}
		return line, nil
	}
}

func (s *Shell) readLine() (string, error) {
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}
