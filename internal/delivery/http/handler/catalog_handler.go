package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wellgym/wellgym-backend/internal/usecase/catalog"
)

type CatalogHandler struct {
	catalogUseCase *catalog.UseCase
}

func NewCatalogHandler(catalogUseCase *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{catalogUseCase: catalogUseCase}
}

// Browse handles GET /catalog: the grouped, duration-filtered category view
// with the auto-selected starting point. When any_matched is false the client
// shows the "no category reaches your budget" disclaimer over the full list.
func (h *CatalogHandler) Browse(c *gin.Context) {
	result, err := h.catalogUseCase.Browse(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
