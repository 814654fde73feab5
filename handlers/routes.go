package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts every API endpoint onto the router. The liveness
// banner and health probe live outside the /api/v1 prefix.
func RegisterRoutes(r chi.Router, auth *AuthHandler, catalogs *StorageCatalogHandler, backups *BackupStatusHandler, version string) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", auth.Login)
			r.Get("/users", auth.ListUsers)
		})

		r.Route("/storage-catalogs", func(r chi.Router) {
			r.Post("/", catalogs.CreateStorageCatalog)
			r.Get("/", catalogs.ListStorageCatalogs)
			r.Route("/{catalog_id}", func(r chi.Router) {
				r.Get("/", catalogs.GetStorageCatalog)
				r.Put("/", catalogs.UpdateStorageCatalog)
				r.Delete("/", catalogs.DeleteStorageCatalog)
			})
		})

		r.Route("/backup-status", func(r chi.Router) {
			r.Post("/", backups.CreateBackupStatus)
			r.Get("/", backups.ListBackupStatuses)
			r.Route("/{backup_id}", func(r chi.Router) {
				r.Get("/", backups.GetBackupStatus)
				r.Put("/", backups.UpdateBackupStatus)
				r.Patch("/mark-complete", backups.MarkBackupComplete)
				r.Delete("/", backups.DeleteBackupStatus)
			})
		})
	})

	r.Get("/", Root(version))
	r.Get("/health", Health)
}
