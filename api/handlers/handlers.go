package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"roastedin/dto"
	"roastedin/scraper"
	"roastedin/services"
	"roastedin/session"
)

// RoastProfileHandler godoc
// @Summary      Roast a LinkedIn profile
// @Description  Scrape the profile and generate a roast. Cached results are returned without re-scraping.
// @Tags         roasts
// @Accept       json
// @Param        request  body  dto.RoastRequest  true  "Profile URL or bare slug"
// @Produce      json
// @Success      200  {object}  dto.RoastDTO
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      429  {object}  map[string]string
// @Router       /roasts [post]
func RoastProfileHandler(svc *services.RoastService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.RoastRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "profile_url is required"})
			return
		}

		result, err := svc.RoastProfile(c.Request.Context(), req.ProfileURL)
		if err != nil {
			status, msg := StatusForError(err)
			c.JSON(status, gin.H{"error": msg})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// StatusForError 는 파이프라인 에러를 HTTP 상태 코드와 클라이언트용 메시지로 번역한다.
func StatusForError(err error) (int, string) {
	switch {
	case errors.Is(err, scraper.ErrNotProfileURL):
		return http.StatusBadRequest, "not a linkedin profile url"
	case errors.Is(err, session.ErrCheckpoint):
		return http.StatusConflict, "linkedin requires manual verification; re-save the session"
	case errors.Is(err, session.ErrNoSession):
		return http.StatusUnauthorized, "no valid linkedin session available"
	case errors.Is(err, scraper.ErrSessionLost):
		return http.StatusUnauthorized, "linkedin session was rejected"
	case errors.Is(err, services.ErrQuotaExhausted):
		return http.StatusTooManyRequests, "daily roast quota exhausted"
	case errors.Is(err, scraper.ErrEmptyProfile):
		return http.StatusUnprocessableEntity, "profile page produced no usable text"
	default:
		return http.StatusBadGateway, err.Error()
	}
}

// GetRoastHandler godoc
// @Summary      Get roast by id
// @Description  Get a previously generated roast by ObjectID
// @Tags         roasts
// @Param        id   path   string  true  "ObjectID"
// @Produce      json
// @Success      200  {object}  dto.RoastDTO
// @Router       /roasts/{id} [get]
func GetRoastHandler(svc *services.RoastService) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Param("id")
		roast, err := svc.GetByID(c.Request.Context(), idStr)
		if err != nil || roast == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, roast)
	}
}

// ListRoastsHandler godoc
// @Summary      List roasts
// @Description  List generated roasts with simple pagination, newest first
// @Tags         roasts
// @Param        page          query  int     false  "Page number (1-based)"
// @Param        page_size     query  int     false  "Page size (<=100)"
// @Produce      json
// @Success      200  {array}  dto.RoastDTO
// @Router       /roasts [get]
func ListRoastsHandler(svc *services.RoastService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
		items, err := svc.List(c.Request.Context(), services.ListRoastsInput{Page: page, PageSize: pageSize})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}
