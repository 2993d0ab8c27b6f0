package webapi

import (
	sessionsvc "github.com/anshusinha/bankist/pkg/service/session"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Routes registers the session endpoints. The demo serves a single session,
// so there is no per-user routing:
//   - POST   /session/login      : authenticate with username and PIN.
//   - GET    /session/statement  : current statement (movements + summary).
//   - POST   /session/transfer   : transfer funds to another account.
//   - POST   /session/loan       : request a loan.
//   - POST   /session/sort       : toggle the sorted movements view.
//   - DELETE /session/account    : close the current account.
func Routes(app *fiber.App, svc *sessionsvc.Service) {
	app.Post("/session/login", Login(svc))
	app.Get("/session/statement", Statement(svc))
	app.Post("/session/transfer", Transfer(svc))
	app.Post("/session/loan", RequestLoan(svc))
	app.Post("/session/sort", ToggleSort(svc))
	app.Delete("/session/account", CloseAccount(svc))
}

// Login returns a Fiber handler that authenticates the session. Unknown
// usernames and wrong PINs both come back as 401 with no distinction.
func Login(svc *sessionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[LoginRequest](c)
		if input == nil {
			return err // error response already written
		}
		st, err := svc.Login(input.Username, input.PIN)
		if err != nil {
			log.Warnf("Login failed for %q", input.Username)
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Login failed", err.Error())
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Welcome back, "+st.FirstName, st)
	}
}

// Statement returns a Fiber handler serving the current account's statement.
func Statement(svc *sessionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := svc.Statement()
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "No active session", err.Error())
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Statement", st)
	}
}

// Transfer returns a Fiber handler moving funds from the current account to
// the named receiver. The rejected cases map to 400 (bad amount), 404
// (unknown receiver) and 422 (self transfer, insufficient funds).
func Transfer(svc *sessionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[TransferRequest](c)
		if input == nil {
			return err
		}
		st, err := svc.Transfer(input.To, input.Amount)
		if err != nil {
			log.Warnf("Transfer to %q rejected: %v", input.To, err)
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Transfer rejected", err.Error())
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Transfer successful", st)
	}
}

// RequestLoan returns a Fiber handler for loan requests.
func RequestLoan(svc *sessionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[LoanRequest](c)
		if input == nil {
			return err
		}
		st, err := svc.RequestLoan(input.Amount)
		if err != nil {
			log.Warnf("Loan request rejected: %v", err)
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Loan rejected", err.Error())
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Loan granted", st)
	}
}

// ToggleSort returns a Fiber handler flipping the sorted display flag.
func ToggleSort(svc *sessionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sorted, err := svc.ToggleSort()
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "No active session", err.Error())
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Sort toggled", SortResponse{Sorted: sorted})
	}
}

// CloseAccount returns a Fiber handler that closes the current account after
// re-confirming its credentials.
func CloseAccount(svc *sessionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[CloseRequest](c)
		if input == nil {
			return err
		}
		if err := svc.Close(input.Username, input.PIN); err != nil {
			log.Warnf("Closure rejected: %v", err)
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Closure rejected", err.Error())
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Account closed", nil)
	}
}
