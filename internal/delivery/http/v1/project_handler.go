package v1

import (
	"net/http"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectUC domain.ProjectUsecase
}

func NewProjectHandler(public *gin.RouterGroup, projectUC domain.ProjectUsecase) {
	handler := &ProjectHandler{projectUC: projectUC}

	projects := public.Group("/projects")
	{
		projects.GET("", handler.List)
		projects.GET("/:slug", handler.Get)
	}
}

func (h *ProjectHandler) List(c *gin.Context) {
	items, err := h.projectUC.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Projects retrieved", items)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	p, err := h.projectUC.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Project retrieved", p)
}
