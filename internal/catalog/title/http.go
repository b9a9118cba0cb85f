/*
Package title manages the reviewable works of the catalog.

# Routing Strategy

  - Discovery (Public): Listing and retrieval accessible to all visitors,
    with filtering by category, genre, year, and name.
  - Management (Restricted): Creating, editing, and deleting titles requires
    admin capability.

Review routes are nested under /titles/{title_id} by the composition root.
*/
package title

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/polyakovaevgenia/api-yamdb/internal/platform/middleware"
	requestutil "github.com/polyakovaevgenia/api-yamdb/internal/platform/request"
	"github.com/polyakovaevgenia/api-yamdb/internal/platform/respond"
	"github.com/polyakovaevgenia/api-yamdb/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the title endpoints to the given router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listTitles)
	router.Get("/{title_id}", handler.getTitle)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAdmin)
		admin.Post("/", handler.createTitle)
		admin.Patch("/{title_id}", handler.updateTitle)
		admin.Delete("/{title_id}", handler.deleteTitle)
	})
}

/*
GET /api/v1/titles.

Request:
  - category: string (category slug)
  - genre: string (genre slug)
  - year: int
  - name: string (substring match)
  - page, limit: pagination

Response:
  - 200: []Title: Paginated list with computed ratings
*/
func (handler *Handler) listTitles(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)
	query := request.URL.Query()

	filter := Filter{
		CategorySlug: query.Get("category"),
		GenreSlug:    query.Get("genre"),
		Name:         query.Get("name"),
	}
	if rawYear := query.Get("year"); rawYear != "" {
		if year, err := strconv.Atoi(rawYear); err == nil {
			filter.Year = year
		}
	}

	titles, total, err := handler.service.List(request.Context(), filter, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, titles, pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) getTitle(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "title_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.Get(request.Context(), titleID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, title)
}

type createTitleRequest struct {
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Description *string  `json:"description"`
	Genre       []string `json:"genre"`
	Category    string   `json:"category"`
}

func (handler *Handler) createTitle(writer http.ResponseWriter, request *http.Request) {
	var input createTitleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.Create(request.Context(), CreateInput{
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		GenreSlugs:   input.Genre,
		CategorySlug: input.Category,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, title)
}

type updateTitleRequest struct {
	Name        *string  `json:"name"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Genre       []string `json:"genre"`
	Category    *string  `json:"category"`
}

func (handler *Handler) updateTitle(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "title_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateTitleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.Update(request.Context(), titleID, UpdateInput{
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		GenreSlugs:   input.Genre,
		CategorySlug: input.Category,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, title)
}

func (handler *Handler) deleteTitle(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "title_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), titleID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
