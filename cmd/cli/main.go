// Interactive terminal front-end for the banking demo. It plays the role of
// the rendering collaborator: it captures user actions, runs them through the
// session service and re-renders the statement after every successful
// mutation.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/anshusinha/bankist/infra/seed"
	"github.com/anshusinha/bankist/pkg/config"
	"github.com/anshusinha/bankist/pkg/repository"
	"github.com/anshusinha/bankist/pkg/service/session"
	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	bold   = color.New(color.Bold)
	yellow = color.New(color.FgYellow)
)

func main() {
	// Keep the terminal clean; the CLI renders its own output.
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))

	cfg, err := config.Load(".env")
	if err != nil {
		red.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}
	accounts, err := seed.Load(cfg.Seed.File)
	if err != nil {
		red.Fprintln(os.Stderr, "failed to load seed accounts:", err)
		os.Exit(1)
	}
	store := repository.NewInMemoryStore(accounts)
	svc := session.NewService(store, slog.Default())

	bold.Println("Bankist — log in to get started")
	reader := bufio.NewReader(os.Stdin)
	for {
		if svc.CurrentAccount() == nil {
			if !loginPrompt(reader, svc) {
				return
			}
			continue
		}
		if !commandPrompt(reader, svc) {
			return
		}
	}
}

// loginPrompt reads credentials and attempts a login. Returns false when the
// user quits (EOF or "quit").
func loginPrompt(reader *bufio.Reader, svc *session.Service) bool {
	fmt.Print("username: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	username = strings.TrimSpace(username)
	if username == "quit" || username == "exit" {
		return false
	}

	pin, ok := readPIN(reader, "pin: ")
	if !ok {
		return false
	}

	st, err := svc.Login(username, pin)
	if err != nil {
		red.Println("Login failed")
		return true
	}
	bold.Printf("Welcome back, %s\n", st.FirstName)
	renderStatement(st)
	return true
}

// commandPrompt runs one command for the authenticated account. Returns
// false when the user quits.
func commandPrompt(reader *bufio.Reader, svc *session.Service) bool {
	fmt.Printf("%s> ", svc.CurrentAccount().Username)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	args := strings.Fields(line)
	if len(args) == 0 {
		return true
	}

	switch args[0] {
	case "statement":
		st, err := svc.Statement()
		if err != nil {
			red.Println(err)
			return true
		}
		renderStatement(st)
	case "transfer":
		if len(args) != 3 {
			yellow.Println("usage: transfer <username> <amount>")
			return true
		}
		amount, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			yellow.Println("invalid amount:", args[2])
			return true
		}
		st, err := svc.Transfer(args[1], amount)
		if err != nil {
			red.Println("Transfer rejected:", err)
			return true
		}
		green.Printf("Transferred ₹ %v to %s\n", amount, args[1])
		renderStatement(st)
	case "loan":
		if len(args) != 2 {
			yellow.Println("usage: loan <amount>")
			return true
		}
		amount, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			yellow.Println("invalid amount:", args[1])
			return true
		}
		st, err := svc.RequestLoan(amount)
		if err != nil {
			red.Println("Loan rejected:", err)
			return true
		}
		green.Printf("Loan of ₹ %v granted\n", amount)
		renderStatement(st)
	case "sort":
		sorted, err := svc.ToggleSort()
		if err != nil {
			red.Println(err)
			return true
		}
		fmt.Println("sorted view:", sorted)
		if st, err := svc.Statement(); err == nil {
			renderStatement(st)
		}
	case "close":
		fmt.Print("confirm username: ")
		confirm, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		pin, ok := readPIN(reader, "confirm pin: ")
		if !ok {
			return false
		}
		if err := svc.Close(strings.TrimSpace(confirm), pin); err != nil {
			red.Println("Closure rejected:", err)
			return true
		}
		bold.Println("Account closed. Log in to get started")
	case "help":
		fmt.Println("commands: statement, transfer <username> <amount>, loan <amount>, sort, close, quit")
	case "quit", "exit":
		return false
	default:
		yellow.Println("unknown command:", args[0], "(try 'help')")
	}
	return true
}

// readPIN reads a masked numeric PIN from the terminal. Falls back to a plain
// line read when stdin is not a TTY (piped input).
func readPIN(reader *bufio.Reader, prompt string) (int, bool) {
	fmt.Print(prompt)
	fd := int(os.Stdin.Fd())
	var raw string
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return 0, false
		}
		raw = string(b)
	} else {
		line, err := reader.ReadString('\n')
		if err != nil {
			return 0, false
		}
		raw = line
	}
	pin, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		// A non-numeric PIN can never match; report it like any bad login.
		return -1, true
	}
	return pin, true
}

func renderStatement(st *session.Statement) {
	fmt.Println()
	for i, mov := range st.Movements {
		if mov > 0 {
			green.Printf("%2d deposit     ₹ %v\n", i+1, mov)
		} else {
			red.Printf("%2d withdrawal  ₹ %v\n", i+1, mov)
		}
	}
	fmt.Println()
	bold.Printf("balance      ₹ %v\n", st.Balance)
	green.Printf("in           ₹ %v\n", st.Deposits)
	red.Printf("out          ₹ %v\n", st.Withdrawals)
	green.Printf("interest     ₹ %v\n", st.Interest)
	fmt.Println()
}
