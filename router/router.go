package router

import (
	"net/http"

	"realty-hub/app/controllers"
	"realty-hub/app/middleware"
	"realty-hub/app/models"
)

func NewRouter(authCtrl *controllers.AuthController, homeCtrl *controllers.HomeController, mw *middleware.Auth) http.Handler {
	mux := http.NewServeMux()

	// public
	mux.HandleFunc("GET /home", homeCtrl.Search)
	mux.HandleFunc("GET /home/{id}", homeCtrl.GetByID)
	mux.HandleFunc("POST /auth/signup/{userType}", authCtrl.Signup)
	mux.HandleFunc("POST /auth/signin", authCtrl.Signin)
	mux.HandleFunc("POST /auth/key", authCtrl.GenerateKey)

	// any authenticated caller
	mux.Handle("GET /auth/me", mw.RequireToken(http.HandlerFunc(authCtrl.Me)))

	// listing management; ownership is enforced inside the controller
	mux.Handle("POST /home", mw.RequireRoles(http.HandlerFunc(homeCtrl.Create), models.RoleRealtor, models.RoleAdmin))
	mux.Handle("PUT /home/{id}", mw.RequireRoles(http.HandlerFunc(homeCtrl.Update), models.RoleRealtor, models.RoleAdmin))
	mux.Handle("DELETE /home/{id}", mw.RequireRoles(http.HandlerFunc(homeCtrl.Delete), models.RoleRealtor, models.RoleAdmin))

	// inquiries
	mux.Handle("POST /home/{id}/inquire", mw.RequireRoles(http.HandlerFunc(homeCtrl.Inquire), models.RoleBuyer))
	mux.Handle("GET /home/{id}/messages", mw.RequireRoles(http.HandlerFunc(homeCtrl.Messages), models.RoleRealtor))

	return mux
}
