package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.JWTMiddleware)

	mux := pat.New()

	// Login
	mux.Post("/user/sign_up", standardMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/user/sign_in", standardMiddleware.ThenFunc(app.userHandler.SignIn))
	mux.Post("/user/sign_out", authMiddleware.ThenFunc(app.userHandler.SignOut))

	// Agenda
	mux.Post("/appointment", authMiddleware.ThenFunc(app.appointmentHandler.CreateAppointment))
	mux.Get("/appointment", authMiddleware.ThenFunc(app.appointmentHandler.GetAppointments))
	mux.Del("/appointment/:id", authMiddleware.ThenFunc(app.appointmentHandler.DeleteAppointment))

	// Caixa
	mux.Post("/transaction", authMiddleware.ThenFunc(app.transactionHandler.CreateTransaction))
	mux.Get("/transaction", authMiddleware.ThenFunc(app.transactionHandler.GetTransactions))
	mux.Del("/transaction/:id", authMiddleware.ThenFunc(app.transactionHandler.DeleteTransaction))
	mux.Post("/report/caixa", authMiddleware.ThenFunc(app.reportHandler.GenerateCaixaReport))

	// Estoque
	mux.Post("/stock", authMiddleware.ThenFunc(app.stockHandler.CreateItem))
	mux.Get("/stock", authMiddleware.ThenFunc(app.stockHandler.GetItems))
	mux.Put("/stock/:id/adjust", authMiddleware.ThenFunc(app.stockHandler.AdjustQuantity))
	mux.Del("/stock/:id", authMiddleware.ThenFunc(app.stockHandler.DeleteItem))

	// Live sync (token checked in the handler, websocket clients cannot
	// always set headers)
	mux.Get("/ws/appointments", http.HandlerFunc(app.appointmentsWS))
	mux.Get("/ws/transactions", http.HandlerFunc(app.transactionsWS))
	mux.Get("/ws/stock", http.HandlerFunc(app.stockWS))

	return mux
}
