package http

import (
	"net/http"
	"strings"
)

// RouterConfig collects the handlers exposed by the reservation API.
type RouterConfig struct {
	Catalog      *CatalogHandler
	Availability *AvailabilityHandler
	Reservations *ReservationHandler
	Customers    *CustomerHandler
}

// NewRouter builds the HTTP route table for the reservation core.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	if cfg.Catalog != nil {
		mux.HandleFunc("/restaurants", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Catalog.Search(w, r)
		})
	}

	if cfg.Availability != nil || cfg.Catalog != nil {
		mux.HandleFunc("/restaurants/", func(w http.ResponseWriter, r *http.Request) {
			rest := strings.TrimPrefix(r.URL.Path, "/restaurants/")
			id, suffix, _ := strings.Cut(rest, "/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}

			switch suffix {
			case "":
				if cfg.Catalog != nil {
					cfg.Catalog.Get(w, r, id)
					return
				}
			case "availability":
				if cfg.Availability != nil {
					cfg.Availability.Query(w, r, id)
					return
				}
			case "tables":
				if cfg.Catalog != nil {
					cfg.Catalog.Tables(w, r, id)
					return
				}
			}
			http.NotFound(w, r)
		})
	}

	if cfg.Reservations != nil {
		mux.HandleFunc("/reservations", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Reservations.Create(w, r)
		})
		mux.HandleFunc("/reservations/", func(w http.ResponseWriter, r *http.Request) {
			ref := strings.TrimPrefix(r.URL.Path, "/reservations/")
			if ref == "" || strings.Contains(ref, "/") {
				http.NotFound(w, r)
				return
			}
			switch r.Method {
			case http.MethodGet:
				cfg.Reservations.Get(w, r, ref)
			case http.MethodDelete:
				cfg.Reservations.Cancel(w, r, ref)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodDelete)
			}
		})
		mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Reservations.Stats(w, r)
		})
	}

	if cfg.Customers != nil {
		mux.HandleFunc("/customers", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Customers.Register(w, r)
		})
		mux.HandleFunc("/customers/", func(w http.ResponseWriter, r *http.Request) {
			rest := strings.TrimPrefix(r.URL.Path, "/customers/")
			phone, suffix, _ := strings.Cut(rest, "/")
			if phone == "" {
				http.NotFound(w, r)
				return
			}
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}

			switch suffix {
			case "":
				cfg.Customers.Lookup(w, r, phone)
			case "reservations":
				cfg.Customers.Reservations(w, r, phone)
			default:
				http.NotFound(w, r)
			}
		})
	}

	return mux
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
