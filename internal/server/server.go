package server

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/bensuskins/pantry-hub/internal/config"
	"github.com/bensuskins/pantry-hub/internal/handlers"
	"github.com/bensuskins/pantry-hub/internal/middleware"
	"github.com/bensuskins/pantry-hub/internal/repository"
	"github.com/bensuskins/pantry-hub/internal/services"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	router *chi.Mux
	config config.Config
}

func New(database *sql.DB, cfg config.Config, authService *services.AuthService,
	matcher services.RecipeMatcher, transcriber services.Transcriber,
	lookup services.ProductLookupFunc) *Server {

	userRepo := repository.NewUserRepository(database)
	tokenRepo := repository.NewAPITokenRepository(database)
	pantryRepo := repository.NewPantryItemRepository(database)
	listRepo := repository.NewShoppingListRepository(database)
	mealRepo := repository.NewCookedMealRepository(database)

	authHandler := handlers.NewAuthHandler(authService)
	pantryHandler := handlers.NewPantryHandler(pantryRepo, lookup, transcriber)
	recipeHandler := handlers.NewRecipeHandler(pantryRepo, mealRepo, matcher)
	shoppingHandler := handlers.NewShoppingHandler(listRepo)
	macrosHandler := handlers.NewMacrosHandler(mealRepo)
	tokenHandler := handlers.NewTokenHandler(tokenRepo)
	calendarHandler := handlers.NewExpiryCalendarHandler(pantryRepo, tokenRepo)

	router := chi.NewRouter()

	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.Compress(5))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	router.Get("/login", authHandler.Login)
	router.Get("/auth/callback", authHandler.Callback)
	router.Get("/logout", authHandler.Logout)
	router.Get("/me", authHandler.Me)

	router.Get("/calendar/expiries.ics", calendarHandler.Feed)

	router.Group(func(r chi.Router) {
		r.Use(middleware.APITokenAuth(tokenRepo, userRepo, "api"))

		r.Get("/api/pantry", pantryHandler.List)
		r.Post("/api/pantry", pantryHandler.Create)
		r.Get("/api/pantry/{id}", pantryHandler.Get)
		r.Put("/api/pantry/{id}", pantryHandler.Update)
		r.Delete("/api/pantry/{id}", pantryHandler.Delete)
		r.Post("/api/pantry/scan", pantryHandler.Scan)
		r.Post("/api/pantry/voice", pantryHandler.Voice)

		r.Get("/api/recipes/suggestions", recipeHandler.Suggestions)
		r.Post("/api/recipes/{id}/cook", recipeHandler.Cook)

		r.Get("/api/macros/daily", macrosHandler.Daily)
		r.Get("/api/macros/meals", macrosHandler.RecentMeals)

		r.Get("/api/shopping-list", shoppingHandler.List)
		r.Post("/api/shopping-list", shoppingHandler.Create)
		r.Post("/api/shopping-list/missing", shoppingHandler.AddMissing)
		r.Post("/api/shopping-list/{id}/toggle", shoppingHandler.Toggle)
		r.Delete("/api/shopping-list/checked", shoppingHandler.ClearChecked)
		r.Delete("/api/shopping-list/{id}", shoppingHandler.Delete)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(authService))
		r.Use(middleware.RequireAdmin)

		r.Get("/api/tokens", tokenHandler.ListTokens)
		r.Post("/api/tokens", tokenHandler.CreateToken)
		r.Delete("/api/tokens/{id}", tokenHandler.DeleteToken)
	})

	server := &Server{
		router: router,
		config: cfg,
	}

	return server
}

func (server *Server) Start() error {
	address := ":" + server.config.Port
	slog.Info("starting server", "address", address)
	return http.ListenAndServe(address, server.router)
}
