package v1

import (
	"net/http"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUC domain.PostUsecase
}

func NewPostHandler(public *gin.RouterGroup, postUC domain.PostUsecase) {
	handler := &PostHandler{postUC: postUC}

	posts := public.Group("/posts")
	{
		posts.GET("", handler.List)
		posts.GET("/:slug", handler.Get)
	}
}

func (h *PostHandler) List(c *gin.Context) {
	items, err := h.postUC.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Posts retrieved", items)
}

func (h *PostHandler) Get(c *gin.Context) {
	p, err := h.postUC.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Post retrieved", p)
}
