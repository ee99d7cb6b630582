package routers

import (
	"checkout-service/internal/app/delivery/http/controllers"
	"checkout-service/internal/app/delivery/http/middlewares"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func attachPaymentRouter(router chi.Router, middlewares *middlewares.Middlewares, limiter func(http.Handler) http.Handler, paymentController *controllers.PaymentController) {
	router.Use(limiter)
	router.Use(middlewares.Authenticate)

	router.Route("/orders/{orderId}", func(r chi.Router) {
		r.Post("/pix", paymentController.CreatePixCharge)
		r.Post("/card", paymentController.ProcessCardPayment)
		r.Post("/checkout", paymentController.CreateCheckout)
	})
}
