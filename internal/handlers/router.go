package handlers

import (
	"taskmanager/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// NewRouter wires every endpoint under /api plus the health probe.
func NewRouter(tasks *TaskHandler, users *UserHandler, rateLimit int) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
	}))
	r.Use(middleware.RateLimit(rateLimit))

	r.Route("/api/task", func(r chi.Router) {
		r.Get("/", tasks.GetAllTasks)
		r.Post("/", tasks.PostTask)

		r.Route("/{taskId:[0-9]+}", func(r chi.Router) {
			r.Get("/", tasks.GetTaskByID)
			r.Put("/", tasks.UpdateTaskByID)
			r.Delete("/", tasks.DeleteTaskByID)
		})

		r.Get("/user/{userId}", tasks.GetTasksForUser)
		r.Get("/state/{state}", tasks.GetTasksByState)
		r.Get("/date/{date}", tasks.GetTasksByDueDate)
	})

	r.Route("/api/user", func(r chi.Router) {
		r.Get("/", users.GetAllUsers)
		r.Post("/", users.PostUser)

		r.Route("/{userId:[0-9]+}", func(r chi.Router) {
			r.Get("/", users.GetUserByID)
			r.Put("/", users.UpdateUserByID)
			r.Delete("/", users.DeleteUserByID)
		})
	})

	r.Get("/health", tasks.HealthCheck)

	return r
}
